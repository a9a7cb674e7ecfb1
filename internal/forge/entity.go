package forge

// Entity is the closed set of addressable forge entities. Only
// Project and Namespace implement it.
type Entity interface {
	entity()
}

func (Project) entity()   {}
func (Namespace) entity() {}

// PathOf returns the canonical path of an entity: the
// namespace-qualified path for projects, the namespace path for
// groups and users. Any other variant is a programming error and
// returns ErrTypeMismatch.
func PathOf(e Entity) (string, error) {
	switch v := e.(type) {
	case Project:
		return v.FullPath, nil
	case Namespace:
		return v.Path, nil
	default:
		return "", ErrTypeMismatch
	}
}
