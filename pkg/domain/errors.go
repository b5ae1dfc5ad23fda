package domain

import "errors"

// ErrSnapshotNotFound is returned when a snapshot ID cannot be found in a store.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrInvalidSnapshotID is returned when a store is given an empty or unusable ID.
var ErrInvalidSnapshotID = errors.New("invalid snapshot id")

// ErrSnapshotExists is returned when publishing to an ID that is already taken.
var ErrSnapshotExists = errors.New("snapshot already exists")
