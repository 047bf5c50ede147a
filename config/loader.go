package config

// Loader fills a target struct from a configuration source
type Loader interface {
	// Load applies defaults, reads the source and validates target
	Load(target any) error
	// Watch calls onChange after every change of the source
	Watch(onChange func()) error
}
