// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config file. It provides
// type-safe access to server, corpus, storage, and quiz settings while
// keeping configuration details separate from the quiz engine.
package config
