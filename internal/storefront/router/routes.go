package router

// Route names used by the guard for redirects.
const (
	RouteHome           = "Home"
	RouteCatalog        = "Catalog"
	RouteProfile        = "Profile"
	RouteProductDetails = "ProductDetails"
	RouteCart           = "Cart"
	RouteLogin          = "Login"
	RouteRegister       = "Register"
	RouteOrders         = "Orders"
	RouteAdminDashboard = "AdminDashboard"
	RouteAbout          = "AboutView"
)

// Route describes one page of the storefront. Routes are static; nothing
// mutates them once the router is built.
type Route struct {
	Path      string // may contain :param segments
	Name      string
	Component string

	// Props passes path params to the component as properties.
	Props bool

	RequiresAuth  bool
	RequiresAdmin bool
}

// DefaultRoutes is the storefront's page table.
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/", Name: RouteHome, Component: "HomeView"},
		{Path: "/catalog", Name: RouteCatalog, Component: "CatalogView"},
		{Path: "/profile", Name: RouteProfile, Component: "ProfileView", RequiresAuth: true},
		{Path: "/product/:id", Name: RouteProductDetails, Component: "ProductDetailsView", Props: true},
		{Path: "/cart", Name: RouteCart, Component: "CartView", RequiresAuth: true},
		{Path: "/login", Name: RouteLogin, Component: "LoginView"},
		{Path: "/register", Name: RouteRegister, Component: "RegisterView"},
		{Path: "/orders", Name: RouteOrders, Component: "OrderDetailsView", RequiresAuth: true},
		{Path: "/admin", Name: RouteAdminDashboard, Component: "AdminDashboardView", RequiresAuth: true, RequiresAdmin: true},
		{Path: "/about", Name: RouteAbout, Component: "AboutView"},
	}
}
