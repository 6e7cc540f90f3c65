// Package film accumulates per-pixel radiance across samples into a
// resolvable image, grounded on original_source/src/films/
// atomic_color.cpp: concurrent Accumulate calls from many in-flight
// paths add into a shared (sum.rgb, count) pair per pixel, with NaN
// rejection and a firefly clamp applied before the add.
package film
