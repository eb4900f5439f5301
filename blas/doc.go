/*
Package blas provides the handful of sparse BLAS level-1 (Basic Linear
Algebra Subprograms) scatter/axpy routines the scde kernels build on:
Dussc backs CSC.ToDense and CSC.ToDenseT's scatter step, and Dusaxpy backs
RowSums and RowSumsConcurrent's per-worker accumulation.

See http://www.netlib.org/blas/blast-forum/chapter3.pdf for further information.
*/
package blas
