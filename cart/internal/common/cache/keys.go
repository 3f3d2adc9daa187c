package cache

import "time"

const (
	// KEY_CARTS_BY_OWNER is versioned by the owner's generation, so a view built before a write
	// lands under a key no reader asks for again.
	KEY_CARTS_BY_OWNER  = "carts:owner:%s:%d"
	KEY_CART_GENERATION = "carts:gen:%s"
	TTL_CARTS_BY_OWNER  = time.Hour
	TTL_CART_GENERATION = 24 * time.Hour
)
