// Package taskview derives read-only views from a user's tasks: overdue and
// upcoming classification, filtered and sorted listings, and dashboard
// statistics. Every function here is pure; callers supply the tasks and the
// current date.
package taskview
