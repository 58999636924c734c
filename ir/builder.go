package ir

// Builder assembles a Document.  Offsets passed to a Builder index into
// the data it was created with.
type Builder struct {
	doc *Document
	cur *recordSpan
}

// NewBuilder returns a builder over data.  The resulting Document takes
// ownership of data; callers must not modify it afterwards.
func NewBuilder(data []byte) *Builder {
	return &Builder{doc: &Document{data: data}}
}

func (b *Builder) WithSource(name string) *Builder {
	b.doc.source = name
	return b
}

// Data returns the bytes the builder indexes into.
func (b *Builder) Data() []byte {
	return b.doc.data
}

// Begin starts a record for the line data[start:end] numbered line.
func (b *Builder) Begin(start, end, line int) {
	b.doc.records = append(b.doc.records, recordSpan{
		first: len(b.doc.fields),
		start: start,
		end:   end,
		line:  line,
	})
	b.cur = &b.doc.records[len(b.doc.records)-1]
}

// Add appends a field whose label is data[start:colon] and value is
// data[colon+1:end] to the current record.
func (b *Builder) Add(start, colon, end int) {
	b.doc.fields = append(b.doc.fields, span{start: start, colon: colon, end: end})
	b.cur.n++
}

// End finishes the current record.
func (b *Builder) End() {
	rs := b.cur
	b.cur = nil
	if rs == nil || rs.n <= indexThreshold {
		return
	}
	rs.index = make(map[string]int, rs.n)
	for j, f := range b.doc.fields[rs.first : rs.first+rs.n] {
		l := string(b.doc.data[f.start:f.colon])
		if _, ok := rs.index[l]; ok {
			continue
		}
		rs.index[l] = j
	}
}

// Document returns the built Document.  The builder must not be used
// afterwards.
func (b *Builder) Document() *Document {
	doc := b.doc
	b.doc = nil
	return doc
}
