// Package credentials holds the credential table checked by Basic authentication.
//
// The table is built once at startup and never mutated, so request handlers
// share it without locking.
//
// # Sources
//
//   - env: the AUTH_USERS value, "user:pass,user2:pass2", merged with the
//     optional AUTH_USERS_FILE holding one "user:password" per line.
//   - database: the username and password columns of AUTH_TABLE, read once
//     through GORM.
//
// # Stored Passwords
//
// A stored value is either plaintext, compared in constant time, or an
// argon2id hash ("$argon2id$..."), verified with argon2id. Hashes can be
// produced with Hash or the "users hash" command. Hashes contain commas, so
// they belong in the users file or the database rather than AUTH_USERS.
// Any value starting with "$argon2id$" is treated as a hash, so such a
// plaintext password can never match.
package credentials
