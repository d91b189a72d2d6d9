package translator

import "encoding/xml"

// Translation is one element of a batch result. Alignment is the provider's
// mapping of source-text spans to translated-text spans, kept opaque here.
type Translation struct {
	Text      string
	Alignment string
}

type translateArrayRequest struct {
	XMLName xml.Name     `xml:"TranslateArrayRequest"`
	AppID   struct{}     `xml:"AppId"`
	From    string       `xml:"From"`
	Texts   textsElement `xml:"Texts"`
	To      string       `xml:"To"`
}

// textsElement keeps the Texts element present even for an empty batch.
type textsElement struct {
	Strings []arrayString `xml:"string"`
}

type arrayString struct {
	XMLName xml.Name `xml:"http://schemas.microsoft.com/2003/10/Serialization/Arrays string"`
	Value   string   `xml:",chardata"`
}

func newTranslateArrayRequest(from, to string, texts []string) (r translateArrayRequest) {
	r.From = from
	r.To = to
	r.Texts.Strings = make([]arrayString, 0, len(texts))
	for _, t := range texts {
		r.Texts.Strings = append(r.Texts.Strings, arrayString{Value: t})
	}
	return
}

type arrayOfTranslateArrayResponse struct {
	XMLName   xml.Name                 `xml:"ArrayOfTranslateArray2Response"`
	Responses []translateArrayResponse `xml:"TranslateArray2Response"`
}

type translateArrayResponse struct {
	Alignment      string `xml:"Alignment"`
	TranslatedText string `xml:"TranslatedText"`
}

type detectResponse struct {
	XMLName xml.Name `xml:"string"`
	Value   string   `xml:",chardata"`
}

type languagesResponse struct {
	XMLName xml.Name `xml:"ArrayOfstring"`
	Codes   []string `xml:"string"`
}
