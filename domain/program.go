package domain

type Program struct {
	ID          string
	Name        string
	Color       string
	Description string
}

// Registry is the fixed table of known programs. It is read-only once built.
type Registry struct {
	byID  map[string]Program
	order []string
}

func NewRegistry(programs []Program) Registry {
	r := Registry{byID: make(map[string]Program, len(programs))}
	for _, p := range programs {
		if _, dup := r.byID[p.ID]; !dup {
			r.order = append(r.order, p.ID)
		}
		r.byID[p.ID] = p
	}
	return r
}

// Lookup never fails: unknown ids get a placeholder named after the id.
func (r Registry) Lookup(id string) (Program, bool) {
	p, ok := r.byID[id]
	if !ok {
		return Program{ID: id, Name: id}, false
	}
	return p, true
}

// All returns the programs in registration order.
func (r Registry) All() []Program {
	out := make([]Program, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

