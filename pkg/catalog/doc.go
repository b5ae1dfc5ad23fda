/*
Package catalog publishes finished experiment sets to a snapshot store.

A Manager serializes access per snapshot ID inside the process and, when a
ports.Locker is configured, across processes sharing the same store.
*/
package catalog
