// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ooxml

import (
	"encoding/xml"
	"strconv"
)

type contentTypes struct {
	XMLName   xml.Name              `xml:"Types"`
	Xmlns     string                `xml:"xmlns,attr"`
	Defaults  []contentTypeDefault  `xml:"Default"`
	Overrides []contentTypeOverride `xml:"Override"`
}

type contentTypeDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type contentTypeOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type relationships struct {
	XMLName       xml.Name       `xml:"Relationships"`
	Xmlns         string         `xml:"xmlns,attr"`
	Relationships []relationship `xml:"Relationship"`
}

type relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// ContentTypes returns the [Content_Types].xml manifest.
func ContentTypes() []byte {
	return encode(contentTypes{
		Xmlns: nsContentTypes,
		Defaults: []contentTypeDefault{
			{Extension: "rels", ContentType: ctRelationships},
			{Extension: "xml", ContentType: ctXML},
		},
		Overrides: []contentTypeOverride{
			{PartName: "/" + PathDocument, ContentType: ctDocument},
			{PartName: "/" + PathStyles, ContentType: ctStyles},
			{PartName: "/" + PathSettings, ContentType: ctSettings},
			{PartName: "/" + PathFontTable, ContentType: ctFontTable},
		},
	})
}

// RootRelationships returns _rels/.rels, which points at the main document.
func RootRelationships() []byte {
	return encode(relationships{
		Xmlns: nsRelationships,
		Relationships: []relationship{
			{ID: "rId1", Type: relOfficeDocument, Target: PathDocument},
		},
	})
}

// DocumentRelationships returns word/_rels/document.xml.rels. Targets are
// relative to the word/ directory.
func DocumentRelationships() []byte {
	return encode(relationships{
		Xmlns: nsRelationships,
		Relationships: []relationship{
			{ID: "rId1", Type: relStyles, Target: "styles.xml"},
			{ID: "rId2", Type: relSettings, Target: "settings.xml"},
			{ID: "rId3", Type: relFontTable, Target: "fontTable.xml"},
		},
	})
}

// val is the common w:val attribute carrier.
type val struct {
	Val string `xml:"w:val,attr"`
}

func v(s string) *val { return &val{Val: s} }

func vi(n int) *val { return &val{Val: strconv.Itoa(n)} }

type empty struct{}

type styles struct {
	XMLName     xml.Name    `xml:"w:styles"`
	W           string      `xml:"xmlns:w,attr"`
	DocDefaults docDefaults `xml:"w:docDefaults"`
	Styles      []style     `xml:"w:style"`
}

type docDefaults struct {
	RPr rPrDefault `xml:"w:rPrDefault"`
	PPr pPrDefault `xml:"w:pPrDefault"`
}

type rPrDefault struct {
	RPr runProps `xml:"w:rPr"`
}

type pPrDefault struct {
	PPr paraProps `xml:"w:pPr"`
}

type style struct {
	Type    string     `xml:"w:type,attr"`
	StyleID string     `xml:"w:styleId,attr"`
	Default string     `xml:"w:default,attr,omitempty"`
	Name    *val       `xml:"w:name"`
	BasedOn *val       `xml:"w:basedOn,omitempty"`
	PPr     *paraProps `xml:"w:pPr,omitempty"`
	RPr     *runProps  `xml:"w:rPr,omitempty"`
}

type fonts struct {
	Ascii string `xml:"w:ascii,attr"`
	HAnsi string `xml:"w:hAnsi,attr"`
	CS    string `xml:"w:cs,attr"`
}

type spacing struct {
	Before   string `xml:"w:before,attr,omitempty"`
	After    string `xml:"w:after,attr,omitempty"`
	Line     string `xml:"w:line,attr,omitempty"`
	LineRule string `xml:"w:lineRule,attr,omitempty"`
}

// Styles returns word/styles.xml with the Normal, Heading1 and PageBreak
// paragraph styles.
func Styles() []byte {
	return encode(styles{
		W: nsMain,
		DocDefaults: docDefaults{
			RPr: rPrDefault{RPr: runProps{
				Fonts:  &fonts{Ascii: "Calibri", HAnsi: "Calibri", CS: "Calibri"},
				Size:   vi(22),
				SizeCS: vi(22),
				Lang:   v("es-ES"),
			}},
			PPr: pPrDefault{PPr: paraProps{
				Spacing: &spacing{After: "160", Line: "259", LineRule: "auto"},
			}},
		},
		Styles: []style{
			{Type: "paragraph", StyleID: "Normal", Default: "1", Name: v("Normal")},
			{
				Type:    "paragraph",
				StyleID: styleHeading,
				Name:    v("Heading 1"),
				BasedOn: v("Normal"),
				PPr:     &paraProps{Spacing: &spacing{Before: "240", After: "120"}},
				RPr:     &runProps{Bold: &empty{}, Size: vi(32), SizeCS: vi(32)},
			},
			{Type: "paragraph", StyleID: "PageBreak", Name: v("Page Break"), BasedOn: v("Normal")},
		},
	})
}

type settings struct {
	XMLName                 xml.Name `xml:"w:settings"`
	W                       string   `xml:"xmlns:w,attr"`
	Zoom                    zoom     `xml:"w:zoom"`
	DefaultTabStop          *val     `xml:"w:defaultTabStop"`
	CharacterSpacingControl *val     `xml:"w:characterSpacingControl"`
	Compat                  compat   `xml:"w:compat"`
}

type zoom struct {
	Percent string `xml:"w:percent,attr"`
}

type compat struct {
	Settings []compatSetting `xml:"w:compatSetting"`
}

type compatSetting struct {
	Name string `xml:"w:name,attr"`
	URI  string `xml:"w:uri,attr"`
	Val  string `xml:"w:val,attr"`
}

// Settings returns word/settings.xml.
func Settings() []byte {
	return encode(settings{
		W:                       nsMain,
		Zoom:                    zoom{Percent: "100"},
		DefaultTabStop:          vi(720),
		CharacterSpacingControl: v("doNotCompress"),
		Compat: compat{Settings: []compatSetting{
			{Name: "compatibilityMode", URI: "http://schemas.microsoft.com/office/word", Val: "15"},
		}},
	})
}

type fontTable struct {
	XMLName xml.Name `xml:"w:fonts"`
	W       string   `xml:"xmlns:w,attr"`
	Fonts   []font   `xml:"w:font"`
}

type font struct {
	Name    string `xml:"w:name,attr"`
	Panose  *val   `xml:"w:panose1"`
	Charset *val   `xml:"w:charset"`
	Family  *val   `xml:"w:family"`
	Pitch   *val   `xml:"w:pitch"`
}

// FontFamilies lists the fonts declared in the font table.
var FontFamilies = []struct {
	Name, Panose, Family string
}{
	{"Calibri", "020F0502020204030204", "swiss"},
	{"Times New Roman", "02020603050405020304", "roman"},
	{"Arial", "020B0604020202020204", "swiss"},
}

// FontTable returns word/fontTable.xml.
func FontTable() []byte {
	t := fontTable{W: nsMain}
	for _, f := range FontFamilies {
		t.Fonts = append(t.Fonts, font{
			Name:    f.Name,
			Panose:  v(f.Panose),
			Charset: v("00"),
			Family:  v(f.Family),
			Pitch:   v("variable"),
		})
	}
	return encode(t)
}
