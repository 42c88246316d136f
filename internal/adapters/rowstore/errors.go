package rowstore

import "errors"

// ErrReadOnly is returned by Append on a table whose store cannot append
var ErrReadOnly = errors.New("rowstore: store is read only")

// ErrUnknownDriver is returned by the factory for an unsupported driver name
var ErrUnknownDriver = errors.New("rowstore: unknown driver")
