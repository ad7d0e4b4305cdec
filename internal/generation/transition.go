package generation

// Resolve picks the next tile to grow from source.
//
// A d20 of 1 or 20 is a wildcard and draws uniformly from every tile.
// Otherwise the source's table is scanned in order and the last matching
// range wins; with no match the previous target stands, starting from
// corruption. Targets with no quota left are retried one roll lower until the
// roll reaches 1, at which point corruption is forced.
func Resolve(d Dice, reg *Registry, source TileID) TileID {
	r := d.D20()
	target := reg.Corruption()
	edges := reg.edges[source]

	for {
		if r == 1 || r == 20 {
			target = TileID(d.Pick(reg.Len()))
		} else {
			for _, e := range edges {
				if r >= e.lower && r <= e.upper {
					target = e.target
				}
			}
		}

		if reg.Remaining(target) != 0 {
			return target
		}
		r--
		if r <= 1 {
			return reg.Corruption()
		}
	}
}
