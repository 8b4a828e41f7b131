// Package cli builds the busyterm command: a Cobra root command whose
// persistent pre-run loads layered Viper configuration and a zap diagnostic
// logger before the busy stream starts.
package cli
