package domain

// LeastLoaded returns the user in users with the fewest assigned tasks.
// Tasks whose assignee is not in users are ignored. Ties go to the user that
// appears first in users.
func LeastLoaded(users []User, tasks []Task) (*User, error) {
	if len(users) == 0 {
		return nil, ErrNoEligibleUsers
	}

	counts := make(map[int64]int, len(users))
	for _, u := range users {
		counts[u.ID] = 0
	}
	for _, t := range tasks {
		if _, ok := counts[t.Assignee]; ok {
			counts[t.Assignee]++
		}
	}

	best := 0
	for i := 1; i < len(users); i++ {
		if counts[users[i].ID] < counts[users[best].ID] {
			best = i
		}
	}
	picked := users[best]
	return &picked, nil
}
