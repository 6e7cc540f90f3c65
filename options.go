package photon

// Option sets one field of a pipelineOptions value. The With*
// functions below record a backend name, a device index, macro
// definitions and a worker count. No function in this module reads a
// pipelineOptions value, so applying an Option has no effect on
// parsing or rendering; cmd/photon-render takes the same settings from
// its command line flags instead.
type Option func(*pipelineOptions)

// pipelineOptions holds the values the Option functions record.
type pipelineOptions struct {
	backendName string
	deviceIndex int
	defines     map[string]string
	workerCount int
}

// defaultOptions returns the default pipeline options.
func defaultOptions() pipelineOptions {
	return pipelineOptions{
		backendName: "", // empty: no backend named
		deviceIndex: 0,
		defines:     make(map[string]string),
		workerCount: 0, // zero: no worker count set
	}
}

// WithBackend records a compute backend name ("wgpu" or "software").
func WithBackend(name string) Option {
	return func(o *pipelineOptions) {
		o.backendName = name
	}
}

// WithDeviceIndex records the index of an enumerated device.
func WithDeviceIndex(index int) Option {
	return func(o *pipelineOptions) {
		o.deviceIndex = index
	}
}

// WithDefine records a macro substitution value under key, the
// counterpart of the command line's repeatable -D key=value flag.
func WithDefine(key, value string) Option {
	return func(o *pipelineOptions) {
		if o.defines == nil {
			o.defines = make(map[string]string)
		}
		o.defines[key] = value
	}
}

// WithWorkerCount records a worker goroutine count.
func WithWorkerCount(n int) Option {
	return func(o *pipelineOptions) {
		o.workerCount = n
	}
}
