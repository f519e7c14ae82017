package shopify

import (
	"time"

	"github.com/greenline/shopify-bridge/internal/domain/catalog"
	"github.com/greenline/shopify-bridge/internal/domain/orders"
)

// ---------------------------------------------------------------------------
// GraphQL envelope
// ---------------------------------------------------------------------------

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type pageInfoNode struct {
	HasNextPage     bool   `json:"hasNextPage"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	StartCursor     string `json:"startCursor"`
	EndCursor       string `json:"endCursor"`
}

type moneyBag struct {
	ShopMoney struct {
		Amount       string `json:"amount"`
		CurrencyCode string `json:"currencyCode"`
	} `json:"shopMoney"`
}

// ---------------------------------------------------------------------------
// Products query
// ---------------------------------------------------------------------------

type productsResponse struct {
	Data struct {
		Products struct {
			Edges []struct {
				Node productNode `json:"node"`
			} `json:"edges"`
			PageInfo pageInfoNode `json:"pageInfo"`
		} `json:"products"`
	} `json:"data"`
	Errors []graphqlError `json:"errors,omitempty"`
}

type productNode struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Handle      string `json:"handle"`
	Description string `json:"description"`
	Images      struct {
		Edges []struct {
			Node imageNode `json:"node"`
		} `json:"edges"`
	} `json:"images"`
	Variants struct {
		Edges []struct {
			Node variantNode `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

type imageNode struct {
	URL string `json:"url"`
}

type variantNode struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	DisplayName      string     `json:"displayName"`
	SKU              string     `json:"sku"`
	Price            string     `json:"price"`
	AvailableForSale bool       `json:"availableForSale"`
	Image            *imageNode `json:"image"`
	SelectedOptions  []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"selectedOptions"`
}

func (n productNode) toDomain() *catalog.Product {
	product := &catalog.Product{
		ID:          n.ID,
		Title:       n.Title,
		Handle:      n.Handle,
		Description: n.Description,
	}
	for _, edge := range n.Images.Edges {
		product.Images = append(product.Images, catalog.Image{URL: edge.Node.URL})
	}
	for _, edge := range n.Variants.Edges {
		product.Variants = append(product.Variants, edge.Node.toDomain())
	}
	return product
}

func (n variantNode) toDomain() *catalog.Variant {
	variant := &catalog.Variant{
		ID:               n.ID,
		Title:            n.Title,
		DisplayName:      n.DisplayName,
		SKU:              n.SKU,
		Price:            n.Price,
		AvailableForSale: n.AvailableForSale,
	}
	if n.Image != nil {
		variant.Image = &catalog.Image{URL: n.Image.URL}
	}
	for _, opt := range n.SelectedOptions {
		variant.SelectedOptions = append(variant.SelectedOptions, catalog.SelectedOption{
			Name:  opt.Name,
			Value: opt.Value,
		})
	}
	return variant
}

// ---------------------------------------------------------------------------
// Orders query
// ---------------------------------------------------------------------------

type ordersResponse struct {
	Data struct {
		Orders struct {
			Edges []struct {
				Node orderNode `json:"node"`
			} `json:"edges"`
			PageInfo pageInfoNode `json:"pageInfo"`
		} `json:"orders"`
	} `json:"data"`
	Errors []graphqlError `json:"errors,omitempty"`
}

type orderNode struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	CurrencyCode        string    `json:"currencyCode"`
	CreatedAt           time.Time `json:"createdAt"`
	ReturnStatus        string    `json:"returnStatus"`
	PaymentGatewayNames []string  `json:"paymentGatewayNames"`
	FullyPaid           bool      `json:"fullyPaid"`
	TotalPriceSet       moneyBag  `json:"totalPriceSet"`
	TotalShippingPrice  moneyBag  `json:"totalShippingPriceSet"`
	Customer            *struct {
		FirstName     string `json:"firstName"`
		LastName      string `json:"lastName"`
		Email         string `json:"email"`
		Phone         string `json:"phone"`
		VerifiedEmail bool   `json:"verifiedEmail"`
	} `json:"customer"`
	ShippingAddress *struct {
		Address1     string `json:"address1"`
		Address2     string `json:"address2"`
		Name         string `json:"name"`
		Phone        string `json:"phone"`
		Company      string `json:"company"`
		City         string `json:"city"`
		Country      string `json:"country"`
		Province     string `json:"province"`
		ProvinceCode string `json:"provinceCode"`
	} `json:"shippingAddress"`
	LineItems struct {
		Edges []struct {
			Node lineItemNode `json:"node"`
		} `json:"edges"`
	} `json:"lineItems"`
	Returns struct {
		Edges []struct {
			Node returnNode `json:"node"`
		} `json:"edges"`
	} `json:"returns"`
}

type lineItemNode struct {
	ID       string `json:"id"`
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
	Variant  *struct {
		ID string `json:"id"`
	} `json:"variant"`
	OriginalTotalSet   moneyBag `json:"originalTotalSet"`
	DiscountedTotalSet moneyBag `json:"discountedTotalSet"`
}

type returnNode struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Status            string `json:"status"`
	ExchangeLineItems struct {
		Edges []struct {
			Node struct {
				ID       string       `json:"id"`
				LineItem lineItemNode `json:"lineItem"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"exchangeLineItems"`
}

func (n orderNode) toDomain() orders.RemoteOrder {
	remote := orders.RemoteOrder{
		ID:                  n.ID,
		Name:                n.Name,
		CurrencyCode:        n.CurrencyCode,
		CreatedAt:           n.CreatedAt,
		ReturnStatus:        n.ReturnStatus,
		PaymentGatewayNames: n.PaymentGatewayNames,
		FullyPaid:           n.FullyPaid,
		TotalPrice:          n.TotalPriceSet.ShopMoney.Amount,
		TotalShippingPrice:  n.TotalShippingPrice.ShopMoney.Amount,
	}
	if n.Customer != nil {
		remote.Customer = orders.Customer{
			FirstName:     n.Customer.FirstName,
			LastName:      n.Customer.LastName,
			Email:         n.Customer.Email,
			Phone:         n.Customer.Phone,
			VerifiedEmail: n.Customer.VerifiedEmail,
		}
	}
	if n.ShippingAddress != nil {
		remote.ShippingAddress = &orders.ShippingAddress{
			Address1:     n.ShippingAddress.Address1,
			Address2:     n.ShippingAddress.Address2,
			Name:         n.ShippingAddress.Name,
			Phone:        n.ShippingAddress.Phone,
			Company:      n.ShippingAddress.Company,
			City:         n.ShippingAddress.City,
			Country:      n.ShippingAddress.Country,
			Province:     n.ShippingAddress.Province,
			ProvinceCode: n.ShippingAddress.ProvinceCode,
		}
	}
	for _, edge := range n.LineItems.Edges {
		remote.LineItems = append(remote.LineItems, edge.Node.toDomain())
	}
	for _, edge := range n.Returns.Edges {
		ret := orders.Return{
			ID:     edge.Node.ID,
			Name:   edge.Node.Name,
			Status: edge.Node.Status,
		}
		for _, ex := range edge.Node.ExchangeLineItems.Edges {
			ret.ExchangeLineItems = append(ret.ExchangeLineItems, orders.ExchangeLineItem{
				ID:       ex.Node.ID,
				LineItem: ex.Node.LineItem.toDomain(),
			})
		}
		remote.Returns = append(remote.Returns, ret)
	}
	return remote
}

func (n lineItemNode) toDomain() orders.LineItem {
	item := orders.LineItem{
		ID:              n.ID,
		SKU:             n.SKU,
		Name:            n.Name,
		Title:           n.Title,
		Quantity:        n.Quantity,
		OriginalTotal:   n.OriginalTotalSet.ShopMoney.Amount,
		DiscountedTotal: n.DiscountedTotalSet.ShopMoney.Amount,
	}
	if n.Variant != nil {
		item.VariantID = n.Variant.ID
	}
	return item
}

func (p pageInfoNode) toDomain() orders.PageInfo {
	return orders.PageInfo{
		HasNextPage:     p.HasNextPage,
		HasPreviousPage: p.HasPreviousPage,
		StartCursor:     p.StartCursor,
		EndCursor:       p.EndCursor,
	}
}
