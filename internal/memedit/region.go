package memedit

import "fmt"

// AddressRange is a named half-open span [Start, End) of the address space.
// Immutable once configured. Names are matched first-wins, so callers should
// keep them unique.
type AddressRange struct {
	Name  string
	Start uint64
	End   uint64
}

func (r AddressRange) Contains(addr uint64) bool {
	return addr >= r.Start && addr < r.End
}

func (r AddressRange) Len() uint64 {
	return r.End - r.Start
}

// RegionSet is the ordered collection of address ranges with one active
// range. A configured RegionSet is never empty.
type RegionSet struct {
	ranges []AddressRange
	active int
}

// Configure replaces all ranges atomically and resets the active index to 0.
// On error the previous configuration, including the active index, is kept.
func (rs *RegionSet) Configure(ranges []AddressRange) error {
	if len(ranges) == 0 {
		return &ConfigError{Reason: "no address ranges"}
	}
	for _, r := range ranges {
		if r.Start > r.End {
			return &ConfigError{Reason: fmt.Sprintf("range %q: start 0x%X past end 0x%X", r.Name, r.Start, r.End)}
		}
	}
	rs.ranges = append([]AddressRange(nil), ranges...)
	rs.active = 0
	return nil
}

// Configured reports whether Configure has succeeded at least once.
func (rs *RegionSet) Configured() bool {
	return len(rs.ranges) > 0
}

// Active returns the active range. Only valid on a configured RegionSet.
func (rs *RegionSet) Active() AddressRange {
	return rs.ranges[rs.active]
}

// SelectByName switches the active range to the first range with the given
// name.
func (rs *RegionSet) SelectByName(name string) error {
	for i, r := range rs.ranges {
		if r.Name == name {
			rs.active = i
			return nil
		}
	}
	return ErrNotFound
}

// Cycle moves the active index by delta, wrapping around both ends.
func (rs *RegionSet) Cycle(delta int) {
	n := len(rs.ranges)
	if n == 0 {
		return
	}
	rs.active = ((rs.active+delta)%n + n) % n
}

// Names returns the range names in configuration order.
func (rs *RegionSet) Names() []string {
	names := make([]string, len(rs.ranges))
	for i, r := range rs.ranges {
		names[i] = r.Name
	}
	return names
}
