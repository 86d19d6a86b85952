/*
Package rnatools provides wrappers for external RNA scoring tools that run on
the JVM: the MCQ web service client and the GDT calculator.

Neither tool is required to compare structures, so a failure to run one of
them never returns an error. Instead, the Result is marked as degraded with
a score of 0 and a reason, and it is up to the caller to log it or treat it
as fatal.
*/
package rnatools
