package domain

import "errors"

// ErrAlreadyExists is an error thrown when entity already exists
var ErrAlreadyExists = errors.New("already exists")

// ErrVideoNotFound is an error thrown when a catalog entry is not found
var ErrVideoNotFound = errors.New("video not found")

// ErrObjectNotFound is an error thrown when a storage object is not found
var ErrObjectNotFound = errors.New("storage object not found")

// ErrUnavailable is an error thrown when a backing service (database, broker, storage) cannot be reached
var ErrUnavailable = errors.New("service unavailable")

// ErrInvalidVideoID is an error thrown when a video id is missing or malformed
var ErrInvalidVideoID = errors.New("invalid video id")

// ErrInvalidStoragePath is an error thrown when a storage path is missing or unsafe
var ErrInvalidStoragePath = errors.New("invalid storage path")

// ErrInvalidRange is an error thrown when a byte range cannot be satisfied
var ErrInvalidRange = errors.New("invalid range")

// ErrUpstreamProtocol is an error thrown when the storage tier answers with a malformed response
var ErrUpstreamProtocol = errors.New("upstream protocol error")

// ErrInvalidEvent is an error thrown when an event payload cannot be decoded or validated
var ErrInvalidEvent = errors.New("invalid event")
