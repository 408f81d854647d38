package event

// Option configures an Emitter.
type Option func(*emitterConfig)

type emitterConfig struct {
	// source is stamped on every envelope's metadata.
	source string

	// panicHandler observes recovered handler panics.
	panicHandler PanicHandler
}

// PanicHandler observes a recovered handler panic. It does not stop the
// panic from being reported through Emit's error.
type PanicHandler func(event any, recovered any, stack []byte)

func defaultEmitterConfig() emitterConfig {
	return emitterConfig{source: "emitter"}
}

// WithSource names the emitter in envelope metadata.
func WithSource(source string) Option {
	return func(c *emitterConfig) {
		if source != "" {
			c.source = source
		}
	}
}

// WithPanicHandler sets the panic observer.
func WithPanicHandler(h PanicHandler) Option {
	return func(c *emitterConfig) {
		c.panicHandler = h
	}
}
