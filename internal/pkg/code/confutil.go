package code

// ConfUtilError: configuration store failures. Code must start with 1xxxxx.
// All surface as 500 and are logged at error level (spec §7).
const (
	// ErrConfRead - 500: failed to read the on-disk config file.
	ErrConfRead int = iota + 120001

	// ErrConfParse - 500: failed to parse the on-disk config as YAML.
	ErrConfParse

	// ErrConfWrite - 500: failed to write the config file.
	ErrConfWrite

	// ErrConfSerialization - 500: failed to marshal Config to YAML.
	ErrConfSerialization

	// ErrConfDigestEncoding - 500: failed to hex-encode the content digest.
	ErrConfDigestEncoding

	// ErrConfMutexLockFailed - 500: failed to acquire the config mutex.
	ErrConfMutexLockFailed

	// ErrConfMutexSetFailed - 500: failed to commit the mutated config to the cache.
	ErrConfMutexSetFailed

	// ErrConfStale - 409: the supplied precondition digest no longer matches the cache.
	ErrConfStale

	// ErrConfNotInitialized - 500: the config store was used before Load().
	ErrConfNotInitialized
)
