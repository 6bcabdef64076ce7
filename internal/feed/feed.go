package feed

import (
	"encoding/xml"
	"strings"
)

// Catalog is the parsed shop container of a YML export. Both feed variants
// land here: <yml_catalog><shop>...</shop></yml_catalog> and a bare <shop>
// root. The container fields are pointers so a missing <categories> block can
// be told apart from an empty one.
type Catalog struct {
	Categories *CategoryList `xml:"categories"`
	Offers     *OfferList    `xml:"offers"`
}

type CategoryList struct {
	Items []Category `xml:"category"`
}

type OfferList struct {
	Items []Offer `xml:"offer"`
}

// Category is one <category id=".." parentId="..">Name</category> entry.
type Category struct {
	ID       string `xml:"id,attr"`
	ParentID string `xml:"parentId,attr"`
	Name     string `xml:",chardata"`
}

// Offer is one product entry. A lone <picture> decodes into a one-element
// slice, so single-vs-repeated picture fields need no special casing.
type Offer struct {
	ID          string   `xml:"id,attr"`
	Available   string   `xml:"available,attr"`
	Name        string   `xml:"name"`
	Description string   `xml:"description"`
	Price       string   `xml:"price"`
	Pictures    []string `xml:"picture"`
	CategoryID  string   `xml:"categoryId"`
}

func (o Offer) IsAvailable() bool {
	switch strings.ToLower(strings.TrimSpace(o.Available)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// ParseCatalog decodes a feed document, accepting the shop container at
// either nesting depth. A document without a recognizable container yields a
// structure-kind error before anything is written.
func ParseCatalog(data []byte) (*Catalog, error) {
	var wrapped struct {
		Shop *Catalog `xml:"shop"`
	}
	if err := xml.Unmarshal(data, &wrapped); err != nil {
		return nil, &SyncError{Kind: KindStructure, Err: err}
	}
	if wrapped.Shop != nil {
		return wrapped.Shop, nil
	}

	var bare Catalog
	if err := xml.Unmarshal(data, &bare); err != nil {
		return nil, &SyncError{Kind: KindStructure, Err: err}
	}
	if bare.Categories == nil && bare.Offers == nil {
		return nil, &SyncError{Kind: KindStructure, Err: ErrNoShop}
	}
	return &bare, nil
}

// CategoryItems returns the category entries, nil-safe.
func (c *Catalog) CategoryItems() []Category {
	if c.Categories == nil {
		return nil
	}
	return c.Categories.Items
}

// OfferItems returns the offer entries, nil-safe.
func (c *Catalog) OfferItems() []Offer {
	if c.Offers == nil {
		return nil
	}
	return c.Offers.Items
}
