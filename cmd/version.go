package cmd

// version is stamped into the binary and reported by the HTTP API.
const version = "1.0.0"
