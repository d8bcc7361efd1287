// Package repository provides typed access to stored procedures and ad-hoc
// SQL on top of the command executor, plus untyped table loading.
package repository
