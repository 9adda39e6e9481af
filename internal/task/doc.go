// Package task implements the background processing pipeline for
// preference learning. Learning sessions are I/O heavy and have no
// response body the caller is waiting on, so the API enqueues them here
// instead of running them inline: a TaskRequestEvent becomes a queued
// Task, and a small worker pool drains the queue.
package task
