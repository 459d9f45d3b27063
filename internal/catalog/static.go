package catalog

import (
	"context"

	"go-ecocidade/internal/model"
	"go-ecocidade/internal/utils"
)

// Static serves a fixed product list, with new ids on every fetch like the remote sources.
type Static struct {
	products []model.Product
}

func NewStatic(products []model.Product) Static {
	return Static{products: products}
}

func (s Static) FetchCatalog(_ context.Context, category string) ([]model.Product, error) {
	filtered := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		if matchesCategory(p, category) {
			filtered = append(filtered, p)
		}
	}
	return normalize(filtered, true), nil
}

// MockProducts is served when no AI catalog is configured or the AI catalog is down.
func MockProducts() []model.Product {
	return []model.Product{
		{
			Name:                "Lâmpada LED Smart Eco",
			Description:         "Lâmpada LED inteligente com controle de intensidade e economia de energia",
			Price:               49.90,
			Category:            "energy",
			ImageUrl:            "https://images.unsplash.com/photo-1542601906990-b4d3fb778b09",
			SustainabilityScore: utils.Float64ToPointer(9.5),
			Certifications:      []string{"Energia A+++", "Smart Home", "Baixo Consumo"},
			AffiliateLink:       "https://www.beelectric.pt/lampada-led-smart-eco",
			Platform:            "BeElectric",
		},
		{
			Name:                "Filtro de Água Ecológico Premium",
			Description:         "Sistema de filtração avançado com materiais biodegradáveis",
			Price:               199.90,
			Category:            "home",
			ImageUrl:            "https://images.unsplash.com/photo-1518531933037-91b2f5f229cc",
			SustainabilityScore: utils.Float64ToPointer(9.2),
			Certifications:      []string{"Zero Plástico", "Filtração Natural", "Material Reciclado"},
			AffiliateLink:       "https://www.pegadaverde.pt/filtro-agua-ecologico",
			Platform:            "Pegada Verde",
		},
		{
			Name:                "Mochila Solar Aventura",
			Description:         "Mochila com painel solar integrado e materiais reciclados",
			Price:               159.90,
			Category:            "accessories",
			ImageUrl:            "https://images.unsplash.com/photo-1498837167922-ddd27525d352",
			SustainabilityScore: utils.Float64ToPointer(8.8),
			Certifications:      []string{"Material Reciclado", "Energia Solar", "Durável"},
			AffiliateLink:       "https://www.ooyoo.pt/mochila-solar-aventura",
			Platform:            "OOYOO",
		},
		{
			Name:                "Trotinete Elétrica Urbana",
			Description:         "Trotinete elétrica dobrável com bateria de longa duração",
			Price:               399.00,
			Category:            "mobility",
			ImageUrl:            "https://images.unsplash.com/photo-1604868189265-219ba7bf7ea3",
			SustainabilityScore: utils.Float64ToPointer(8.1),
			Certifications:      []string{"Zero Emissões", "Bateria Reciclável"},
			AffiliateLink:       "https://www.trotinetes.pt/trotinete-eletrica-urbana",
			Platform:            "Trotinetes Portugal",
		},
	}
}
