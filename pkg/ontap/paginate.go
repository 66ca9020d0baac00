package ontap

import "context"

// defaultMaxRecords bounds the page size of a collection walk without
// truncating the total result.
const defaultMaxRecords = "1000"

// FetchAll walks a paginated collection and returns every record in response
// order. The first page is fetched from path+query; each following page is
// fetched from the _links.next.href the server embedded in the previous page,
// which already encodes the cursor. The walk ends when a page carries no next
// link, and a page fetch failure aborts the whole walk with no partial result.
//
// No page-count ceiling is imposed: a server that keeps emitting next links
// keeps the walker going. Callers talking to untrusted hosts must cap the
// walk externally.
func (c *Client) FetchAll(ctx context.Context, target Target, method, path string, body map[string]any, query map[string]string) ([]map[string]any, error) {
	seeded := make(map[string]string, len(query)+1)
	for key, value := range query {
		seeded[key] = value
	}

	if _, ok := seeded["max_records"]; !ok {
		seeded["max_records"] = defaultMaxRecords
	}

	records := make([]map[string]any, 0)
	req := Request{Method: method, Path: path, Body: body, Query: seeded}

	for {
		resp, err := c.Do(ctx, target, req)
		if err != nil {
			return nil, err
		}

		records = append(records, resp.Records...)

		if resp.NextHref == "" {
			return records, nil
		}

		// The href supersedes path and query from here on.
		req = Request{Method: method, Href: resp.NextHref}
	}
}
