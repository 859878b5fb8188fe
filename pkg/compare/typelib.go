package compare

// equalTypelib compares two GObject-Introspection typelibs by the text
// of their full symbol dump, since the binary typelib format embeds no
// timestamps but its layout is not byte-stable across otherwise
// identical builds.
func (c *Comparator) equalTypelib(a, b string) (bool, error) {
	da, err := c.External.DumpTypelib(a)
	if err != nil {
		return false, err
	}
	db, err := c.External.DumpTypelib(b)
	if err != nil {
		return false, err
	}
	return da == db, nil
}
