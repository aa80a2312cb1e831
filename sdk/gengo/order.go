package gengo

import (
	"context"
	"strconv"
)

// Order fetches an order with its member job ids grouped by status.
func (c *Client) Order(ctx context.Context, id int) (*Order, error) {
	raw, err := c.get(ctx, orderPath(id), nil)
	if err != nil {
		return nil, err
	}
	return mapFetchedOrder(raw), nil
}

// DeleteOrder cancels every job of the order that is still available.
func (c *Client) DeleteOrder(ctx context.Context, id int) error {
	_, err := c.do(ctx, c.requests().Delete(orderPath(id), nil))
	return err
}

func orderPath(id int) string {
	return "translate/order/" + strconv.Itoa(id)
}

func (c *Client) Glossaries(ctx context.Context) ([]Glossary, error) {
	raw, err := c.get(ctx, "translate/glossary", nil)
	if err != nil {
		return nil, err
	}
	return mapGlossaries(raw), nil
}

func (c *Client) Glossary(ctx context.Context, id int) (*Glossary, error) {
	raw, err := c.get(ctx, "translate/glossary/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, err
	}
	return mapGlossary(raw), nil
}
