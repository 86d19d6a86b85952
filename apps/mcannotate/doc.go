/*
Package mcannotate provides a wrapper for running MC-Annotate, which
classifies the base pairs and stackings of an RNA structure.

The executable is found through the $MCANNOTATE_BIN environment variable, or
on the PATH as 'MC-Annotate'. Change DefaultConfig (or use your own Config)
to run a different binary.
*/
package mcannotate
