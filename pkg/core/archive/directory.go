package archive

import "github.com/jakechorley/shmira-scheduler/pkg/core/model"

// Directory resolves person tokens, members first, then guests
type Directory struct {
	members map[string]model.Member
	guests  map[string]model.Guest
}

// NewDirectory indexes members and guests by token
func NewDirectory(members []model.Member, guests []model.Guest) *Directory {
	d := &Directory{
		members: make(map[string]model.Member, len(members)),
		guests:  make(map[string]model.Guest, len(guests)),
	}
	for _, m := range members {
		d.members[m.Token] = m
	}
	for _, g := range guests {
		d.guests[g.Token] = g
	}
	return d
}

// Lookup returns the person for token and whether it was found
func (d *Directory) Lookup(token string) (model.Person, bool) {
	token = model.NormalizeToken(token)
	if m, ok := d.members[token]; ok {
		return model.PersonFromMember(m), true
	}
	if g, ok := d.guests[token]; ok {
		return model.PersonFromGuest(g), true
	}
	return model.Person{Type: model.PersonUnknown, Token: token}, false
}

// Resolve is Lookup without the found flag; unresolved tokens are PersonUnknown
func (d *Directory) Resolve(token string) model.Person {
	p, _ := d.Lookup(token)
	return p
}
