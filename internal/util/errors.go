package util

import "errors"

var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("record already exists")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrPurgeNotConfirmed = errors.New("purge must be explicitly confirmed")

	// availability gate
	ErrNotAvailable = errors.New("course not available")

	// malformed or inconsistent input
	ErrMissingTotal          = errors.New("total number of modules is required")
	ErrInvalidModule         = errors.New("module id must be a positive integer")
	ErrModuleNotInCourse     = errors.New("module does not belong to this course")
	ErrInvalidTotalQuestions = errors.New("total questions must be a positive integer")
	ErrInvalidScore          = errors.New("score must be an integer between 0 and total questions")
	ErrIncompleteAnswers     = errors.New("every question must be answered")
	ErrInvalidPeriodicity    = errors.New("periodicity must be a non-negative number of days")

	// lifecycle preconditions
	ErrModulesIncomplete = errors.New("all modules must be completed before the evaluation")
	ErrAttemptsExhausted = errors.New("maximum number of evaluation attempts reached")
	ErrAlreadyApproved   = errors.New("evaluation already approved")
	ErrNotApproved       = errors.New("final evaluation not approved")
	ErrCourseIncomplete  = errors.New("course not completed")
	ErrUnknownCourse     = errors.New("course not found in catalog")
)
