package world

import "github.com/crystal-mush/mushemote/pkg/socials"

// DBRef numbers objects in the order they were added to a World.
type DBRef int

// Nothing is the DBRef of an object that isn't in any world.
const Nothing DBRef = -1

// Object is a named thing that can emote and be emoted at.
type Object struct {
	DBRef DBRef
	name  string
	sex   string
}

// NewObject creates an object that doesn't belong to a world yet.
func NewObject(name, sex string) *Object {
	return &Object{DBRef: Nothing, name: name, sex: sex}
}

// Name implements socials.Named.
func (o *Object) Name() string { return o.name }

// Sex returns the raw SEX value the object was created with.
func (o *Object) Sex() string { return o.sex }

// Gender implements socials.Gendered.
func (o *Object) Gender() socials.Gender { return socials.ParseGender(o.sex) }

func (o *Object) String() string { return o.name }
