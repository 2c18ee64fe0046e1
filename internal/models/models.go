package model

// All lists every model the schema migration manages.
func All() []any {
	return []any{&User{}, &Task{}, &Identity{}, &Sequence{}}
}
