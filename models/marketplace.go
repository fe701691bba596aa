package models

type MarketplaceItemType string

const (
	ItemTheme   MarketplaceItemType = "theme"
	ItemModule  MarketplaceItemType = "module"
	ItemFeature MarketplaceItemType = "feature"
)

// MarketplaceItem is an unlockable. Every current item is free.
type MarketplaceItem struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Cost        int                 `json:"cost"`
	Type        MarketplaceItemType `json:"type"`
}

var MarketplaceCatalog = []MarketplaceItem{
	{ID: "m-1", Name: "Zen Mode", Description: "Minimalist B&W interface.", Type: ItemTheme},
	{ID: "m-2", Name: "Matrix Mode", Description: "Digital rain aesthetic.", Type: ItemTheme},
	{ID: "m-3", Name: "Focus Sounds", Description: "Rain, Fire, White Noise.", Type: ItemModule},
	{ID: "m-5", Name: "Cyber Avatar", Description: "Neon profile border.", Type: ItemFeature},
	{ID: "m-6", Name: "Dashboard Pro", Description: "Advanced charts (Unlocked)", Type: ItemFeature},
}

func FindMarketplaceItem(id string) (MarketplaceItem, bool) {
	for _, it := range MarketplaceCatalog {
		if it.ID == id {
			return it, true
		}
	}
	return MarketplaceItem{}, false
}
