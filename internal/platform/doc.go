// Package platform contains OS and filesystem glue: output directories, WAV
// file naming, URL list loading, playlist expansion and revealing finished
// files in the system file manager.
package platform
