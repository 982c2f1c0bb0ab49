package geo

// tldCountries maps a link's top-level domain to a country name.
var tldCountries = map[string]string{
	"us": "United States", "uk": "United Kingdom", "ca": "Canada",
	"au": "Australia", "de": "Germany", "fr": "France", "it": "Italy",
	"es": "Spain", "nl": "Netherlands", "se": "Sweden", "no": "Norway",
	"fi": "Finland", "dk": "Denmark", "pl": "Poland", "jp": "Japan",
	"cn": "China", "kr": "South Korea", "in": "India", "sg": "Singapore",
	"nz": "New Zealand", "ie": "Ireland", "ch": "Switzerland",
	"at": "Austria", "be": "Belgium", "il": "Israel", "ru": "Russia",
	"br": "Brazil", "mx": "Mexico", "za": "South Africa",
	"ae": "United Arab Emirates", "sa": "Saudi Arabia", "ar": "Argentina",
	"cl": "Chile", "co": "Colombia", "pe": "Peru", "ve": "Venezuela",
	"uy": "Uruguay", "py": "Paraguay", "bo": "Bolivia", "ec": "Ecuador",
	"id": "Indonesia", "tr": "Turkey", "bg": "Bulgaria", "hr": "Croatia",
	"cy": "Cyprus", "cz": "Czech Republic", "ee": "Estonia", "gr": "Greece",
	"hu": "Hungary", "lv": "Latvia", "lt": "Lithuania", "lu": "Luxembourg",
	"mt": "Malta", "pt": "Portugal", "ro": "Romania", "sk": "Slovakia",
	"si": "Slovenia", "th": "Thailand", "vn": "Vietnam", "ph": "Philippines",
	"my": "Malaysia", "tw": "Taiwan", "eg": "Egypt", "ng": "Nigeria",
	"ke": "Kenya", "ma": "Morocco", "tn": "Tunisia", "dz": "Algeria",
	"pk": "Pakistan", "bd": "Bangladesh", "lk": "Sri Lanka", "mm": "Myanmar",
	"kh": "Cambodia", "la": "Laos",
}

// urlPatterns maps country names to URL substrings that strongly indicate
// that country (mostly government domains).
var urlPatterns = map[string][]string{
	"United States":  {".gov/", "cisa.gov", "us-cert.gov", "fbi.gov", "cia.gov", "nsa.gov"},
	"United Kingdom": {".gov.uk", "ncsc.gov.uk", "gchq.gov.uk"},
	"Canada":         {".gc.ca", "cyber.gc.ca", "canada.ca"},
	"Australia":      {".gov.au", "cyber.gov.au", "acsc.gov.au"},
	"Germany":        {"bsi.bund.de"},
	"France":         {"ssi.gouv.fr"},
	"Japan":          {".go.jp"},
	"Singapore":      {".gov.sg", "csa.gov.sg"},
	"Israel":         {".gov.il"},
	"European Union": {"europa.eu", "enisa.europa.eu"},
}

// vendorCountries maps vendor/lab name fragments (matched against the source
// name, lowercased) to the vendor's home country.
var vendorCountries = map[string][]string{
	"United States": {
		"microsoft", "google", "cisco", "palo alto", "crowdstrike", "cloudflare",
		"fireeye", "mandiant", "proofpoint", "zscaler", "okta", "splunk",
		"rapid7", "tenable", "qualys", "fortinet", "symantec", "mcafee",
		"ibm security", "aws", "github security",
	},
	"United Kingdom": {"sophos", "darktrace", "bae systems", "ncc group"},
	"Israel":         {"check point", "cyberark", "sentinelone", "cybereason"},
	"Russia":         {"kaspersky"},
	"Japan":          {"trend micro", "jpcert"},
	"Canada":         {"citizen lab"},
}

// govSources maps government/CERT source-name or URL fragments to countries.
// Each entry lists fragments matched against the lowercased source name or link.
var govSources = map[string][]string{
	"United States":  {"cisa", "us-cert"},
	"United Kingdom": {"ncsc uk"},
	"European Union": {"enisa", "cert-eu"},
	"Canada":         {"cccs"},
	"Italy":          {"csirt italia", "csirt.gov.it"},
	"Finland":        {"ncsc-fi", "kyberturvallisuuskeskus"},
	"Sweden":         {"cert-se", "cert.se"},
	"Denmark":        {"cfcs", "cert.dk"},
	"Norway":         {"nsm norway", "nsm.no"},
	"Austria":        {"cert.at"},
	"Belgium":        {"ccb belgium", "cert.be"},
	"Switzerland":    {"govcert switzerland", "govcert.ch"},
	"Czech Republic": {"nukib"},
	"Poland":         {"cert.pl"},
	"Slovakia":       {"sk-cert"},
	"Hungary":        {"ncsc hungary", "nki.gov.hu"},
	"Latvia":         {"cert.lv"},
	"Slovenia":       {"si-cert", "cert.si"},
	"Croatia":        {"cert.hr"},
	"Romania":        {"cert-ro", "dnsc.ro"},
	"Ukraine":        {"cert-ua", "cert.gov.ua"},
	"Spain":          {"ccn-cert"},
	"Portugal":       {"cncs portugal", "cncs.gov.pt"},
	"Greece":         {"gr-cert", "cert.grnet.gr"},
	"Hong Kong":      {"govcert.hk", "hkcert"},
	"Bangladesh":     {"cirt.gov.bd"},
	"Egypt":          {"eg-cert", "egcert.eg"},
	"Israel":         {"cert-il"},
	"Australia":      {"auscert"},
	"Singapore":      {"csa singapore"},
	"New Zealand":    {"cert nz"},
}

// countryPatterns maps country names to content keywords: country names,
// demonyms, capitals, and well-known national agencies.
var countryPatterns = map[string][]string{
	"United States":  {"united states", "u.s.", "u.s.a.", "american", "us government", "fbi", "cia", "nsa", "dhs"},
	"Canada":         {"canada", "canadian", "rcmp"},
	"United Kingdom": {"united kingdom", "u.k.", "britain", "british", "gchq"},
	"Australia":      {"australia", "australian", "acsc"},
	"Germany":        {"germany", "german", "bsi"},
	"France":         {"france", "french", "anssi"},
	"Japan":          {"japan", "japanese"},
	"China":          {"china", "chinese", "beijing"},
	"Russia":         {"russia", "russian", "moscow", "kremlin"},
	"Israel":         {"israel", "israeli", "tel aviv"},
	"Singapore":      {"singapore", "singaporean"},
	"South Korea":    {"south korea", "korean", "seoul"},
	"India":          {"india", "indian", "new delhi"},
	"Brazil":         {"brazil", "brazilian", "brasil", "são paulo", "rio de janeiro"},
	"Netherlands":    {"netherlands", "dutch", "amsterdam"},
	"Sweden":         {"sweden", "swedish", "stockholm"},
	"Norway":         {"norway", "norwegian", "oslo"},
	"Finland":        {"finland", "finnish", "helsinki"},
	"Denmark":        {"denmark", "danish", "copenhagen"},
	"Poland":         {"poland", "polish", "warsaw"},
	"Italy":          {"italy", "italian", "rome"},
	"Spain":          {"spain", "spanish", "madrid"},
	"Switzerland":    {"switzerland", "swiss", "bern"},
	"New Zealand":    {"new zealand", "wellington"},
	"Ireland":        {"ireland", "irish", "dublin"},
	"South Africa":   {"south africa", "south african"},
	"European Union": {"european union", "european commission", "brussels"},
	"Argentina":      {"argentina", "argentine", "argentinian", "buenos aires"},
	"Chile":          {"chile", "chilean", "santiago"},
	"Colombia":       {"colombia", "colombian", "bogota"},
	"Mexico":         {"mexico", "mexican", "mexico city"},
	"Peru":           {"peru", "peruvian", "lima"},
	"Indonesia":      {"indonesia", "indonesian", "jakarta"},
	"Turkey":         {"turkey", "turkish", "türkiye", "ankara", "istanbul"},
	"Bulgaria":       {"bulgaria", "bulgarian", "sofia"},
	"Croatia":        {"croatia", "croatian", "zagreb"},
	"Cyprus":         {"cyprus", "cypriot", "nicosia"},
	"Czech Republic": {"czech republic", "czech", "prague"},
	"Estonia":        {"estonia", "estonian", "tallinn"},
	"Greece":         {"greece", "greek", "athens"},
	"Hungary":        {"hungary", "hungarian", "budapest"},
	"Latvia":         {"latvia", "latvian", "riga"},
	"Lithuania":      {"lithuania", "lithuanian", "vilnius"},
	"Luxembourg":     {"luxembourg", "luxembourgish"},
	"Malta":          {"malta", "maltese", "valletta"},
	"Portugal":       {"portugal", "portuguese", "lisbon"},
	"Romania":        {"romania", "romanian", "bucharest"},
	"Slovakia":       {"slovakia", "slovak", "bratislava"},
	"Slovenia":       {"slovenia", "slovenian", "ljubljana"},
	"Thailand":       {"thailand", "thai", "bangkok"},
	"Vietnam":        {"vietnam", "vietnamese", "hanoi", "ho chi minh"},
	"Philippines":    {"philippines", "filipino", "manila"},
	"Malaysia":       {"malaysia", "malaysian", "kuala lumpur"},
	"Taiwan":         {"taiwan", "taiwanese", "taipei"},
	"Egypt":          {"egypt", "egyptian", "cairo"},
	"Nigeria":        {"nigeria", "nigerian", "lagos", "abuja"},
	"Kenya":          {"kenya", "kenyan", "nairobi"},
	"Morocco":        {"morocco", "moroccan", "rabat"},
	"Tunisia":        {"tunisia", "tunisian", "tunis"},
	"Algeria":        {"algeria", "algerian", "algiers"},
	"Pakistan":       {"pakistan", "pakistani", "islamabad", "karachi"},
	"Bangladesh":     {"bangladesh", "bangladeshi", "dhaka"},
	"Sri Lanka":      {"sri lanka", "sri lankan", "colombo"},
	"Myanmar":        {"myanmar", "burma", "burmese", "yangon"},
	"Cambodia":       {"cambodia", "cambodian", "phnom penh"},
	"Laos":           {"laos", "laotian", "vientiane"},
	"Venezuela":      {"venezuela", "venezuelan", "caracas"},
	"Uruguay":        {"uruguay", "uruguayan", "montevideo"},
	"Paraguay":       {"paraguay", "paraguayan", "asuncion"},
	"Bolivia":        {"bolivia", "bolivian", "la paz"},
	"Ecuador":        {"ecuador", "ecuadorian", "quito"},
}

// contextWords gate content-keyword matches: a country mention only counts
// when one of these appears within the surrounding text window.
var contextWords = []string{
	"government", "authorities", "officials", "agency", "ministry",
	"targeted", "attacked", "breach", "incident", "cyber", "security",
}

// specialCaseNames fixes capitalization for multi-word country names that
// strings.Title-style casing would get wrong.
var specialCaseNames = map[string]string{
	"united states":        "United States",
	"united kingdom":       "United Kingdom",
	"european union":       "European Union",
	"south korea":          "South Korea",
	"new zealand":          "New Zealand",
	"south africa":         "South Africa",
	"united arab emirates": "United Arab Emirates",
	"saudi arabia":         "Saudi Arabia",
}

// SupportedCountries is the full set of countries the system can tag,
// regardless of whether any stored article currently carries them. Used by
// the countries listing endpoint so the UI can always offer the full choice.
var SupportedCountries = []string{
	// G20
	"Argentina", "Australia", "Brazil", "Canada", "China", "France", "Germany",
	"India", "Indonesia", "Italy", "Japan", "Mexico", "Russia", "Saudi Arabia",
	"South Africa", "South Korea", "Turkey", "United Kingdom", "United States",
	// EU
	"European Union", "Austria", "Belgium", "Bulgaria", "Croatia", "Cyprus",
	"Czech Republic", "Denmark", "Estonia", "Finland", "Greece", "Hungary",
	"Ireland", "Latvia", "Lithuania", "Luxembourg", "Malta", "Netherlands",
	"Poland", "Portugal", "Romania", "Slovakia", "Slovenia", "Spain", "Sweden",
	// NATO additions
	"Albania", "Iceland", "Montenegro", "North Macedonia", "Norway",
	// South America
	"Chile", "Colombia", "Peru", "Venezuela", "Uruguay", "Paraguay", "Bolivia", "Ecuador",
	// Asia-Pacific
	"Thailand", "Vietnam", "Philippines", "Malaysia", "Taiwan", "Singapore",
	"Hong Kong", "Bangladesh", "Sri Lanka", "Myanmar", "Cambodia", "Laos",
	// Middle East and Africa
	"Egypt", "Nigeria", "Kenya", "Morocco", "Tunisia", "Algeria",
	"Israel", "United Arab Emirates",
	// Other
	"Pakistan", "New Zealand", "Switzerland", "Ukraine",
}
