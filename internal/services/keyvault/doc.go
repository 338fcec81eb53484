// Package keyvault owns the account's asymmetric key pair lifecycle:
// generate once, persist locally, read forever. The private key never
// crosses this package's boundary except inside the returned KeyPair,
// and no ledger I/O happens here.
package keyvault
