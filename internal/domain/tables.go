package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	// Catalog
	&Category{},
	&Article{},
	// Checkout
	&Cart{},
	&CartItem{},
}
