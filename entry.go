package tiff

// Entry is one parsed IFD record: a tag paired with its typed value.
type Entry struct {
	Tag   uint16
	Value TypedValue
}

// Directory is an ordered collection of entries as found in one IFD. Tags
// are unique within a directory (§3); lookup is by tag, iteration order is
// file order.
type Directory struct {
	Entries []Entry
	index   map[uint16]int

	// SubIFDs holds directories reached from this one via a pointer-typed
	// tag (tExifIFD, tSubIFDs, ...), keyed by the tag that referenced them.
	SubIFDs map[uint16][]*Directory
}

func newDirectory() *Directory {
	return &Directory{index: make(map[uint16]int), SubIFDs: make(map[uint16][]*Directory)}
}

func (d *Directory) add(e Entry) {
	if i, ok := d.index[e.Tag]; ok {
		d.Entries[i] = e // Spec invariant: a tag appears at most once; last write wins.
		return
	}
	d.index[e.Tag] = len(d.Entries)
	d.Entries = append(d.Entries, e)
}

// Get returns the value of tag's entry and whether it was present.
func (d *Directory) Get(tag uint16) (TypedValue, bool) {
	i, ok := d.index[tag]
	if !ok {
		return TypedValue{}, false
	}
	return d.Entries[i].Value, true
}

// FirstLong returns the first widened value of tag, or 0 if absent.
func (d *Directory) FirstLong(tag uint16) uint64 {
	v, ok := d.Get(tag)
	if !ok {
		return 0
	}
	return v.First()
}

// LongArray returns the widened array of tag, or nil if absent.
func (d *Directory) LongArray(tag uint16) []uint64 {
	v, ok := d.Get(tag)
	if !ok {
		return nil
	}
	return v.AsLongArray()
}

// Has reports whether tag is present in the directory.
func (d *Directory) Has(tag uint16) bool {
	_, ok := d.index[tag]
	return ok
}

// CompoundDirectory is the IFD chain (IFD0, IFD1, ...), each possibly
// carrying its own SubIFDs (§3).
type CompoundDirectory struct {
	Directories []*Directory
}

// Len reports the number of top-level images (directories) in the chain.
func (c *CompoundDirectory) Len() int { return len(c.Directories) }
