// Package directory stores the two-factor enrollment record of every identity.
//
// Store is the storage abstraction used by the authentication service.
// MemoryStore keeps records in process; RedisStore persists them in Redis and
// can encrypt secrets at rest through a SecretCipher. Locker provides the
// per-identity mutual exclusion the service needs for read-modify-write
// sequences on a record.
package directory
