package gait

// DecodeContact adds the LT and RT on-ground channels. Only the exact
// contact code counts as ground contact.
func DecodeContact(t *Table) error {
	lt, err := t.Ints(ColLTContact)
	if err != nil {
		return err
	}
	rt, err := t.Ints(ColRTContact)
	if err != nil {
		return err
	}
	if err := t.SetBools(ColLT, decodeCodes(lt)); err != nil {
		return err
	}
	return t.SetBools(ColRT, decodeCodes(rt))
}

func decodeCodes(codes []int64) []bool {
	out := make([]bool, len(codes))
	for i, c := range codes {
		out[i] = c == ContactCode
	}
	return out
}

// ClassifySupport derives DB, SG, LT_SG and RT_SG from the LT and RT
// channels. DB and SG are complementary on every row.
func ClassifySupport(t *Table) error {
	lt, err := t.Bools(ColLT)
	if err != nil {
		return err
	}
	rt, err := t.Bools(ColRT)
	if err != nil {
		return err
	}
	n := len(lt)
	db := make([]bool, n)
	sg := make([]bool, n)
	ltSG := make([]bool, n)
	rtSG := make([]bool, n)
	for i := range n {
		db[i] = lt[i] && rt[i]
		sg[i] = !db[i]
		ltSG[i] = lt[i] && sg[i]
		rtSG[i] = rt[i] && sg[i]
	}
	for _, c := range []struct {
		name string
		v    []bool
	}{
		{ColDB, db},
		{ColSG, sg},
		{ColLTSG, ltSG},
		{ColRTSG, rtSG},
	} {
		if err := t.SetBools(c.name, c.v); err != nil {
			return err
		}
	}
	return nil
}
