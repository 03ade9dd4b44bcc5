package letters

// BureauContact is a static directory entry: the agency's dispute department
// name and mailing address.
type BureauContact struct {
	Name    string
	Address string
}

var bureauDirectory = map[Bureau]BureauContact{
	BureauExperian: {
		Name:    "Experian",
		Address: "Experian\nDispute Department\nP.O. Box 4500\nAllen, TX 75013",
	},
	BureauEquifax: {
		Name:    "Equifax Information Services LLC",
		Address: "Equifax Information Services LLC\nDispute Department\nP.O. Box 740256\nAtlanta, GA 30374",
	},
	BureauTransUnion: {
		Name:    "TransUnion LLC",
		Address: "TransUnion LLC\nConsumer Dispute Center\nP.O. Box 2000\nChester, PA 19016",
	},
}

// BureauInfo resolves a bureau to its directory entry.
func BureauInfo(b Bureau) (BureauContact, bool) {
	c, ok := bureauDirectory[b]
	return c, ok
}

// Bureaus lists every bureau the directory knows.
func Bureaus() []Bureau {
	return []Bureau{BureauExperian, BureauEquifax, BureauTransUnion}
}
