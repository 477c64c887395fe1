// Package shoptest runs an in-process fake of the shop API for tests.
package shoptest

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Product struct {
	ID          string  `json:"_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category,omitempty"`
}

type OrderItem struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

type Order struct {
	Name          string      `json:"name"`
	Address       string      `json:"address"`
	PaymentMethod string      `json:"payment_method"`
	Items         []OrderItem `json:"items"`
}

type user struct {
	Name     string
	Email    string
	Password string
	IsAdmin  bool
}

type claims struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

type failure struct {
	status int
	detail string
}

type Server struct {
	*httptest.Server

	secret []byte

	mu          sync.Mutex
	products    []Product
	users       map[string]user
	orders      []Order
	orderFail   *failure
	onMe        func(token string)
	meCalls     int
	orderCalls  int
	productMuts int
}

// New starts a server that is closed when t finishes.
func New(t testing.TB) *Server {
	t.Helper()

	gin.SetMode(gin.TestMode)

	s := &Server{
		secret: []byte(uuid.NewString()),
		users:  make(map[string]user),
	}

	r := gin.New()
	r.GET("/api/me", s.me)
	r.GET("/api/products", s.listProducts)
	r.POST("/api/orders", s.placeOrder)
	r.POST("/api/auth/login", s.login)
	r.POST("/api/auth/signup", s.signup)

	admin := r.Group("/api/products", s.requireAdmin)
	admin.POST("", s.createProduct)
	admin.PUT("/:id", s.updateProduct)
	admin.DELETE("/:id", s.deleteProduct)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)

	return s
}

func (s *Server) AddProduct(title string, price float64) Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Product{
		ID:          uuid.NewString(),
		Title:       title,
		Description: title + " description",
		Price:       price,
	}
	s.products = append(s.products, p)
	return p
}

func (s *Server) Products() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Product(nil), s.products...)
}

// AddUser registers a user and returns a valid token for it.
func (s *Server) AddUser(name, email, password string, admin bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := user{Name: name, Email: email, Password: password, IsAdmin: admin}
	s.users[strings.ToLower(email)] = u
	return s.mint(u)
}

// FailOrders makes every following order request fail with status and detail.
// An empty detail produces an empty JSON object.
func (s *Server) FailOrders(status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orderFail = &failure{status: status, detail: detail}
}

// OnMe installs a hook invoked before /api/me responds.
func (s *Server) OnMe(fn func(token string)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.onMe = fn
}

func (s *Server) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Order(nil), s.orders...)
}

func (s *Server) MeCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.meCalls
}

func (s *Server) OrderCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.orderCalls
}

func (s *Server) ProductMutations() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.productMuts
}

func (s *Server) mint(u user) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name:    u.Name,
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: u.Email,
			ID:      uuid.NewString(),
		},
	}).SignedString(s.secret)
	if err != nil {
		panic(err)
	}
	return token
}

func (s *Server) parse(header string) (*claims, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return nil, errors.New("missing bearer token")
	}

	c := &claims{}
	_, err := jwt.ParseWithClaims(raw, c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Server) me(c *gin.Context) {
	s.mu.Lock()
	s.meCalls++
	hook := s.onMe
	s.mu.Unlock()

	if hook != nil {
		hook(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	}

	cl, err := s.parse(c.GetHeader("Authorization"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"_id":      cl.Subject,
		"email":    cl.Email,
		"name":     cl.Name,
		"is_admin": cl.IsAdmin,
	})
}

func (s *Server) requireAdmin(c *gin.Context) {
	cl, err := s.parse(c.GetHeader("Authorization"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}
	if !cl.IsAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Admin only"})
		return
	}
	c.Next()
}

func (s *Server) listProducts(c *gin.Context) {
	search := strings.ToLower(c.Query("search"))

	s.mu.Lock()
	defer s.mu.Unlock()

	products := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if search == "" || strings.Contains(strings.ToLower(p.Title), search) {
			products = append(products, p)
		}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (s *Server) createProduct(c *gin.Context) {
	var p Product
	if err := c.ShouldBindJSON(&p); err != nil || p.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid product"})
		return
	}
	p.ID = uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.productMuts++
	s.products = append(s.products, p)
	c.JSON(http.StatusCreated, p)
}

func (s *Server) updateProduct(c *gin.Context) {
	var p Product
	if err := c.ShouldBindJSON(&p); err != nil || p.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid product"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.productMuts++
	for i := range s.products {
		if s.products[i].ID == c.Param("id") {
			p.ID = s.products[i].ID
			s.products[i] = p
			c.JSON(http.StatusOK, p)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found"})
}

func (s *Server) deleteProduct(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.productMuts++
	for i := range s.products {
		if s.products[i].ID == c.Param("id") {
			s.products = append(s.products[:i], s.products[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found"})
}

func (s *Server) placeOrder(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orderCalls++

	if f := s.orderFail; f != nil {
		if f.detail == "" {
			c.JSON(f.status, gin.H{})
			return
		}
		c.JSON(f.status, gin.H{"detail": f.detail})
		return
	}

	var o Order
	if err := c.ShouldBindJSON(&o); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid order"})
		return
	}
	if len(o.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Cart is empty"})
		return
	}

	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	s.orders = append(s.orders, o)

	c.JSON(http.StatusOK, gin.H{"order_id": uuid.NewString(), "total": total})
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[strings.ToLower(req.Email)]
	if !ok || u.Password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": s.mint(u)})
}

func (s *Server) signup(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(req.Email)
	if _, exists := s.users[key]; exists {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Email already registered"})
		return
	}

	u := user{Name: req.Name, Email: req.Email, Password: req.Password}
	s.users[key] = u
	c.JSON(http.StatusOK, gin.H{"token": s.mint(u)})
}
