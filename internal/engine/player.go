package engine

import "fmt"

// Player tracks completion of an active workout. It is owned by the session
// and never persisted.
type Player struct {
	exercises []Exercise
	completed map[string]bool
}

func NewPlayer(exs []Exercise) *Player {
	return &Player{
		exercises: cloneExercises(exs),
		completed: map[string]bool{},
	}
}

func (p *Player) Exercises() []Exercise { return cloneExercises(p.exercises) }
func (p *Player) Len() int              { return len(p.exercises) }

func (p *Player) index(id string) int {
	for i := range p.exercises {
		if p.exercises[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *Player) Exercise(id string) (Exercise, bool) {
	i := p.index(id)
	if i < 0 {
		return Exercise{}, false
	}
	return p.exercises[i].clone(), true
}

// ToggleComplete flips completion of id. Unknown ids are ignored and report false.
func (p *Player) ToggleComplete(id string) bool {
	if p.index(id) < 0 {
		return false
	}
	if p.completed[id] {
		delete(p.completed, id)
	} else {
		p.completed[id] = true
	}
	return true
}

func (p *Player) IsCompleted(id string) bool { return p.completed[id] }

func (p *Player) CompletedCount() int { return len(p.completed) }

// CompletedIDs returns completed ids in exercise order.
func (p *Player) CompletedIDs() []string {
	out := make([]string, 0, len(p.completed))
	for _, e := range p.exercises {
		if p.completed[e.ID] {
			out = append(out, e.ID)
		}
	}
	return out
}

// IsSessionComplete is true iff the list is non-empty and every exercise is completed.
func (p *Player) IsSessionComplete() bool {
	return len(p.exercises) > 0 && len(p.completed) == len(p.exercises)
}

// Replace swaps in ex at the position of id. The id is kept so the entry stays
// trackable; completion is cleared because the movement changed.
func (p *Player) Replace(id string, ex Exercise) error {
	i := p.index(id)
	if i < 0 {
		return fmt.Errorf("exercise %q not in session", id)
	}
	ex = ex.clone()
	ex.ID = id
	ex.Alternate = false
	p.exercises[i] = ex
	delete(p.completed, id)
	return nil
}

// MarkAlternate flags id as an alternate without touching its completion.
func (p *Player) MarkAlternate(id string) error {
	i := p.index(id)
	if i < 0 {
		return fmt.Errorf("exercise %q not in session", id)
	}
	p.exercises[i].Alternate = true
	return nil
}

// Progress returns completed/total as a fraction in [0,1].
func (p *Player) Progress() float64 {
	if len(p.exercises) == 0 {
		return 0
	}
	return float64(len(p.completed)) / float64(len(p.exercises))
}
