// Package vcs is the narrow interface between the reconciliation engine and
// git.
//
// Host lists every version control operation the engine performs. GitCLI
// implements it by running the git binary; nothing else in the module
// shells out to git. Errors carry the GIT_COMMAND code with git's stderr
// in the message, except OpenRepository which reports
// NOT_A_GIT_REPOSITORY.
package vcs
