// Package utils holds the ambient plumbing shared by the CLI: a Viper backed
// ConfigurationLoader, a zap LoggerFactory that writes diagnostics to standard
// error, and a FlushingWriter for in-place terminal redraws.
package utils
