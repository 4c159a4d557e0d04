package apiclient

import "context"

// Liveness checks if the API is up.
func (c *Client) Liveness(ctx context.Context) (HealthResponse, error) {
	var health HealthResponse
	if err := c.Get(ctx, "/livez", &health); err != nil {
		return HealthResponse{}, err
	}
	return health, nil
}
