package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// The legacy order description is a sectioned text block:
//
//	###### NEW ORDER ######
//	====== CONTACT INFO ======
//	• Customer name: ...
//	====== ORDER ITEMS ======
//	[Item 1]
//	▶ Name: ...
//	▶ Quantity: ...
//	▶ Price per unit: ...
//	▶ Subtotal: ...
//
// New records carry structured items; the block is generated on render and
// parsed only for rows written before the structured column existed.

const orderMarker = "###### NEW ORDER ######"

var (
	itemBlockRe = regexp.MustCompile(`\[Item \d+\]([^\[]+)`)
	nameRe      = regexp.MustCompile(`▶ Name: ([^\n]+)`)
	quantityRe  = regexp.MustCompile(`▶ Quantity: (\d+)`)
	priceRe     = regexp.MustCompile(`▶ Price per unit: ([0-9.]+)`)
	productRe   = regexp.MustCompile(`▶ Product link: [^\n]*/shop/(\d+)`)
)

// IsOrderDescription reports whether a description block is a legacy order
// summary rather than consultation free text.
func IsOrderDescription(description string) bool {
	return strings.Contains(description, orderMarker)
}

// RenderOrderDescription builds the human-readable summary block for a
// purchase notification.
func RenderOrderDescription(n *Notification, baseURL string) string {
	var b strings.Builder

	b.WriteString(orderMarker + "\n\n")
	b.WriteString("====== CONTACT INFO ======\n")
	fmt.Fprintf(&b, "• Customer name: %s\n", n.Name)
	fmt.Fprintf(&b, "• Phone: %s\n", n.Phone)
	fmt.Fprintf(&b, "• Email: %s\n", n.Email)
	fmt.Fprintf(&b, "• Delivery address: %s\n\n", n.Address)

	b.WriteString("====== ORDER ITEMS ======\n")
	for i, item := range n.Items {
		fmt.Fprintf(&b, "[Item %d]\n", i+1)
		fmt.Fprintf(&b, "▶ Name: %s\n", item.Name)
		fmt.Fprintf(&b, "▶ Quantity: %d\n", item.Quantity)
		fmt.Fprintf(&b, "▶ Price per unit: %s\n", FormatPrice(item.Price))
		fmt.Fprintf(&b, "▶ Subtotal: %s\n", FormatPrice(item.Price*float64(item.Quantity)))
		if item.ProductID != 0 && baseURL != "" {
			fmt.Fprintf(&b, "▶ Product link: %s/shop/%d\n", baseURL, item.ProductID)
		}
		b.WriteString("\n")
	}

	b.WriteString("====== TOTAL ======\n")
	fmt.Fprintf(&b, "• Order total: %s\n\n", n.Total)

	b.WriteString("====== ORDER COMMENTS ======\n")
	if strings.TrimSpace(n.Comments) == "" {
		b.WriteString("No comments\n")
	} else {
		b.WriteString(n.Comments + "\n")
	}

	return b.String()
}

// ParseOrderDescription extracts line items from a legacy description block.
// When no item pattern matches it returns nil and ok=false; callers render
// the raw block instead of failing.
func ParseOrderDescription(description string) (items []LineItem, ok bool) {
	// Item blocks only ever appear under the ORDER ITEMS heading, so the
	// block pattern is selective enough to run over the whole text.
	for _, match := range itemBlockRe.FindAllStringSubmatch(description, -1) {
		block := match[1]
		item := LineItem{Quantity: 1}

		if m := nameRe.FindStringSubmatch(block); m != nil {
			item.Name = strings.TrimSpace(m[1])
		}
		if m := quantityRe.FindStringSubmatch(block); m != nil {
			if quantity, err := strconv.Atoi(m[1]); err == nil {
				item.Quantity = quantity
			}
		}
		if m := priceRe.FindStringSubmatch(block); m != nil {
			if price, err := strconv.ParseFloat(m[1], 64); err == nil {
				item.Price = price
			}
		}
		if m := productRe.FindStringSubmatch(block); m != nil {
			if id, err := strconv.ParseInt(m[1], 10, 64); err == nil {
				item.ProductID = id
			}
		}

		if item.Name == "" {
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, false
	}
	return items, true
}

// ItemsOf returns the structured line items of a notification, falling back
// to parsing the legacy description block when the items column is empty.
func ItemsOf(n *Notification) ([]LineItem, bool) {
	if len(n.Items) > 0 {
		return n.Items, true
	}
	if !IsOrderDescription(n.Description) {
		return nil, false
	}
	return ParseOrderDescription(n.Description)
}

// FormatPrice renders a ruble amount for display blocks.
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + " ₽"
}
