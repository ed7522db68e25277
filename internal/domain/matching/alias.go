package matching

// neighborhoodAliases groups known regional spelling variants of the same
// bairro. Entries are stored in normalized form. Variants come from how
// customers actually write their neighborhood in messages: y/i and s/z swaps,
// dropped suffixes, archaic spellings.
var neighborhoodAliases = [][]string{
	{"icoaraci", "icoaracy", "vila de icoaraci"},
	{"maguari", "maguary", "conjunto maguari"},
	{"marambaia", "marambaya"},
	{"umarizal", "umarisal"},
	{"telegrafo", "telegrapho", "telegrafo sem fio"},
	{"jurunas", "juruna"},
	{"guama", "terra firme guama"},
	{"sacramenta", "sacramento"},
	{"tapana", "tapanan"},
	{"cidade nova", "cidade nova 8", "cidade nova viii"},
	{"coqueiro", "conjunto coqueiro"},
	{"benguui", "bengui"},
}

// aliasGroupIndex maps a normalized neighborhood spelling to its group id.
var aliasGroupIndex = buildAliasIndex()

func buildAliasIndex() map[string]int {
	idx := make(map[string]int)
	for groupID, group := range neighborhoodAliases {
		for _, spelling := range group {
			idx[spelling] = groupID
		}
	}
	return idx
}

// sameAliasGroup reports whether both normalized spellings belong to the same
// alias group.
func sameAliasGroup(na, nb string) bool {
	ga, ok := aliasGroupIndex[na]
	if !ok {
		return false
	}
	gb, ok := aliasGroupIndex[nb]
	return ok && ga == gb
}
