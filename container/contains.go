package container

// Contains implements spec §4.1 deep_contains: structural containment of
// pattern within doc. For objects, every pattern key must exist in doc with
// a matching-or-contained value. For arrays, every pattern element must
// find an equal-or-contained element in doc. Scalars match by
// order-comparable equality (Compare == 0).
func Contains(docE Entry, docP []byte, patE Entry, patP []byte) (bool, error) {
	if docE.Type == EntryContainer && patE.Type == EntryContainer {
		doc, err := Parse(docP)
		if err != nil {
			return false, err
		}

		pat, err := Parse(patP)
		if err != nil {
			return false, err
		}

		if doc.Header.Kind != pat.Header.Kind {
			return false, nil
		}

		switch pat.Header.Kind {
		case KindObject:
			return containsObject(doc, pat)
		default:
			return containsArray(doc, pat)
		}
	}

	c, err := Compare(docE, docP, patE, patP)
	if err != nil {
		return false, err
	}

	return c == 0, nil
}

func containsObject(doc, pat *View) (bool, error) {
	patPairs, err := pat.Pairs()
	if err != nil {
		return false, err
	}

	for _, pp := range patPairs {
		de, dv, ok, err := doc.Find(pp.Key)
		if err != nil {
			return false, err
		}

		if !ok {
			return false, nil
		}

		ok, err = Contains(de, dv, pp.Entry, pp.ValueBytes)
		if err != nil {
			return false, err
		}

		if !ok {
			return false, nil
		}
	}

	return true, nil
}

func containsArray(doc, pat *View) (bool, error) {
	docE, docP, err := doc.Elems()
	if err != nil {
		return false, err
	}

	patE, patP, err := pat.Elems()
	if err != nil {
		return false, err
	}

	for i := range patE {
		found := false

		for j := range docE {
			ok, err := Contains(docE[j], docP[j], patE[i], patP[i])
			if err != nil {
				return false, err
			}

			if ok {
				found = true
				break
			}
		}

		if !found {
			return false, nil
		}
	}

	return true, nil
}
