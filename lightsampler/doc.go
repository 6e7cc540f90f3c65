// Package lightsampler implements the unified environment-plus-area
// light selection and sampling interface spec.md §4.7 describes,
// grounded on original_source/src/base/light_sampler.cpp's
// sample_selection/sample_light/sample_environment split and
// original_source/src/environments/spherical.cpp for the environment
// half.
package lightsampler
