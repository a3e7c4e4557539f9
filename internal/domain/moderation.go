package domain

import "strings"

// Normalize deja un término o nombre listo para comparar: trim + fold.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TermSet es la foto de las listas compartidas al momento de evaluar.
type TermSet struct {
	Blacklist []string
	Whitelist []string
}

// Blocks: true si algún término de blacklist es substring del nombre
// foldeado y ningún término de whitelist lo es. La whitelist gana siempre,
// incluso con solapamiento ("spam" en blacklist, "spammer" en whitelist
// → un nombre con "spammer" pasa).
func (ts TermSet) Blocks(displayName string) bool {
	name := Normalize(displayName)
	if name == "" {
		return false
	}
	for _, w := range ts.Whitelist {
		if w != "" && strings.Contains(name, w) {
			return false
		}
	}
	for _, b := range ts.Blacklist {
		if b != "" && strings.Contains(name, b) {
			return true
		}
	}
	return false
}

// Clone copia los slices: un snapshot entregado a un lector no puede
// compartir backing array con una cache que sigue mutando.
func (ts TermSet) Clone() TermSet {
	return TermSet{
		Blacklist: append([]string(nil), ts.Blacklist...),
		Whitelist: append([]string(nil), ts.Whitelist...),
	}
}

func (ts TermSet) Has(term, kind string) bool {
	list := ts.Blacklist
	if kind == "whitelist" {
		list = ts.Whitelist
	}
	for _, t := range list {
		if t == term {
			return true
		}
	}
	return false
}
