package domain

// Grade bounds. Higher is more senior.
const (
	MinGrade = 1
	MaxGrade = 10
)

// CanAssign reports whether a user with userGrade may take a task requiring
// taskGrade. A missing grade on either side imposes no constraint.
func CanAssign(userGrade, taskGrade *int) bool {
	if userGrade == nil || taskGrade == nil {
		return true
	}
	return *userGrade >= *taskGrade
}

// ValidateGrade accepts nil or a value within [MinGrade, MaxGrade].
func ValidateGrade(g *int) error {
	if g == nil {
		return nil
	}
	if *g < MinGrade || *g > MaxGrade {
		return ErrInvalidGrade
	}
	return nil
}
