// Package queue implements the principal queueing structures and algorithms
// for staged processing of migration items. Queues are generally thread-safe
// and report their own [Progress], with processing driven either sequentially
// or concurrently by a pool of workers.
package queue
