package model

type CourseState string

const (
	StateNotStarted         CourseState = "not_started"
	StateInProgress         CourseState = "in_progress"
	StateModulesComplete    CourseState = "modules_complete"
	StateEvaluatedFailed    CourseState = "evaluated_failed"
	StateAttemptsExhausted  CourseState = "attempts_exhausted"
	StateEvaluatedPassed    CourseState = "evaluated_passed"
	StateCertified          CourseState = "certified"
	StateAvailabilityLocked CourseState = "availability_locked"
)

// DeriveCourseState maps persisted records onto the lifecycle. Any argument may be nil.
func DeriveCourseState(p *CourseProgress, a *CourseAvailability, c *CourseCertificate) CourseState {
	if c != nil {
		if a != nil && !a.Disponivel {
			return StateAvailabilityLocked
		}
		return StateCertified
	}
	if p == nil {
		return StateNotStarted
	}
	if p.AvaliacaoFinalAprovada {
		return StateEvaluatedPassed
	}
	if p.TentativasAvaliacao >= MaxEvaluationAttempts {
		return StateAttemptsExhausted
	}
	if p.AvaliacaoFinalRealizada {
		return StateEvaluatedFailed
	}
	if p.IsModulesComplete() {
		return StateModulesComplete
	}
	return StateInProgress
}
