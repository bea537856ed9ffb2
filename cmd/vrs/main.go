package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/NE-Resources-2025/VRS/internal/api"
	"github.com/NE-Resources-2025/VRS/internal/booking"
	"github.com/NE-Resources-2025/VRS/internal/config"
	"github.com/NE-Resources-2025/VRS/internal/logger"
	"github.com/NE-Resources-2025/VRS/internal/models"
	"github.com/NE-Resources-2025/VRS/internal/payment"
	"github.com/NE-Resources-2025/VRS/internal/session"
	"github.com/joho/godotenv"
)

// app wires the client pieces together for one invocation. Each user-facing
// flow maps onto a subcommand.
type app struct {
	client   *api.Client
	session  *session.Store
	bookings *booking.Service
	payments *payment.Processor
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Setup(cfg.LogFile)

	client := api.NewClient(cfg.APIBaseURL)
	store := session.NewStore(client, session.NewKeystore(cfg.SessionFile))
	a := &app{
		client:   client,
		session:  store,
		bookings: booking.NewService(client, store),
		payments: payment.NewProcessor(client),
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	store.Restore(ctx)

	var err error
	switch os.Args[1] {
	case "login":
		err = a.login(ctx, os.Args[2:])
	case "register":
		err = a.register(ctx, os.Args[2:])
	case "logout":
		err = a.logout()
	case "whoami":
		err = a.whoami()
	case "vehicles":
		err = a.vehicles(ctx, os.Args[2:])
	case "vehicle":
		err = a.vehicle(ctx, os.Args[2:])
	case "book":
		err = a.book(ctx, os.Args[2:])
	case "bookings":
		err = a.listBookings(ctx, os.Args[2:])
	case "adjust":
		err = a.adjust(ctx, os.Args[2:])
	case "cancel":
		err = a.cancel(ctx, os.Args[2:])
	case "pay":
		err = a.pay(ctx, os.Args[2:])
	case "profile":
		err = a.profile(ctx)
	case "update-profile":
		err = a.updateProfile(ctx, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: vrs <command> [flags]

Commands:
  login           -email -password
  register        -name -email -password
  logout
  whoami
  vehicles        [-status available|unavailable]
  vehicle         -id <vehicleId>
  book            -vehicle <id> -pickup <loc> -drop <loc> -date YYYY-MM-DD -time HH:MM [-hours n]
  bookings        [-tab all|upcoming|past|cancelled]
  adjust          -booking <id> -hours <n> -op add|subtract
  cancel          -booking <id>
  pay             -booking <id> -card <number> -expiry MM/YY -cvv <cvv>
  profile
  update-profile  [-name n] [-email e] [-password p]`)
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	user, err := a.session.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	user, err := a.session.Register(ctx, *name, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Welcome, %s. You are now logged in.\n", user.Name)
	return nil
}

func (a *app) logout() error {
	if err := a.session.Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

func (a *app) whoami() error {
	user := a.session.Current()
	if user == nil {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Printf("%s <%s> (id %s)\n", user.Name, user.Email, user.ID)
	return nil
}

func (a *app) vehicles(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("vehicles", flag.ExitOnError)
	status := fs.String("status", "available", "status filter")
	fs.Parse(args)

	vehicles, err := a.client.ListVehicles(ctx, models.VehicleStatus(*status))
	if err != nil {
		return err
	}
	if len(vehicles) == 0 {
		fmt.Println("No vehicles found")
		return nil
	}
	for _, v := range vehicles {
		fmt.Printf("%s  %-24s %-10s $%.2f/hr  %s\n", v.ID, v.Type, v.Plate, v.PricePerHour, v.Status)
	}
	return nil
}

func (a *app) vehicle(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("vehicle", flag.ExitOnError)
	id := fs.String("id", "", "vehicle id")
	fs.Parse(args)

	v, err := a.client.GetVehicle(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n", v.Type, v.Plate)
	fmt.Printf("  rate:         $%.2f/hr\n", v.PricePerHour)
	fmt.Printf("  status:       %s\n", v.Status)
	if v.Seats > 0 {
		fmt.Printf("  seats:        %d\n", v.Seats)
	}
	if v.Transmission != "" {
		fmt.Printf("  transmission: %s\n", v.Transmission)
	}
	if v.Rating > 0 {
		fmt.Printf("  rating:       %.1f\n", v.Rating)
	}
	fmt.Printf("  driver:       %s\n", v.Driver)
	return nil
}

func (a *app) book(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	vehicleID := fs.String("vehicle", "", "vehicle id")
	pickup := fs.String("pickup", "", "pickup location")
	drop := fs.String("drop", "", "drop-off location")
	date := fs.String("date", "", "pickup date (YYYY-MM-DD)")
	timeStr := fs.String("time", "", "pickup time (HH:MM)")
	hours := fs.String("hours", "1", "duration in hours")
	fs.Parse(args)

	vehicle, err := a.client.GetVehicle(ctx, *vehicleID)
	if err != nil {
		return err
	}

	created, err := a.bookings.Create(ctx, vehicle, booking.Form{
		PickupLocation: *pickup,
		DropLocation:   *drop,
		PickupDate:     *date,
		PickupTime:     *timeStr,
		Duration:       *hours,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Booking %s created: %d hr of %s for $%.2f (%s)\n",
		created.ID, created.Duration, vehicle.Type, created.TotalPrice, created.Status)
	fmt.Printf("Run 'vrs pay -booking %s ...' to confirm it.\n", created.ID)
	return nil
}

func (a *app) listBookings(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bookings", flag.ExitOnError)
	tab := fs.String("tab", "all", "all|upcoming|past|cancelled")
	fs.Parse(args)

	user := a.session.Current()
	if user == nil {
		return fmt.Errorf("not logged in")
	}

	details, err := a.client.ListBookings(ctx, user.ID)
	if err != nil {
		return err
	}

	filtered := booking.Filter(details, booking.Tab(*tab), time.Now())
	if len(filtered) == 0 {
		fmt.Println("No bookings found")
		return nil
	}
	for _, d := range filtered {
		fmt.Printf("%s  %-24s %s %s  %d hr  $%.2f  %s\n",
			d.ID, d.Vehicle.Type, d.PickupDate, d.PickupTime, d.Duration, d.TotalPrice, d.Status)
	}
	return nil
}

func (a *app) adjust(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("adjust", flag.ExitOnError)
	bookingID := fs.String("booking", "", "booking id")
	hours := fs.String("hours", "", "hours to add or subtract")
	op := fs.String("op", "add", "add|subtract")
	fs.Parse(args)

	detail, err := a.findBooking(ctx, *bookingID)
	if err != nil {
		return err
	}

	updated, err := a.bookings.AdjustDuration(ctx, detail, *hours, booking.Op(*op))
	if err != nil {
		return err
	}
	fmt.Printf("Duration updated to %d hours ($%.2f)\n", updated.Duration, updated.TotalPrice)
	return nil
}

func (a *app) cancel(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	bookingID := fs.String("booking", "", "booking id")
	fs.Parse(args)

	detail, err := a.findBooking(ctx, *bookingID)
	if err != nil {
		return err
	}

	cancelled, err := a.bookings.Cancel(ctx, &detail.Booking, func() bool {
		fmt.Print("Are you sure you want to cancel this booking? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		return strings.EqualFold(strings.TrimSpace(answer), "y")
	})
	if err != nil {
		return err
	}
	if cancelled == nil {
		fmt.Println("Booking kept")
		return nil
	}
	fmt.Println("Booking cancelled successfully")
	return nil
}

func (a *app) pay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pay", flag.ExitOnError)
	bookingID := fs.String("booking", "", "booking id")
	card := fs.String("card", "", "card number")
	expiry := fs.String("expiry", "", "expiry (MM/YY)")
	cvv := fs.String("cvv", "", "cvv")
	fs.Parse(args)

	detail, err := a.findBooking(ctx, *bookingID)
	if err != nil {
		return err
	}

	confirmed, err := a.payments.Confirm(ctx, &detail.Booking, payment.CardDetails{
		Number: *card,
		Expiry: *expiry,
		CVV:    *cvv,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Payment successful! Booking %s confirmed.\n", confirmed.ID)
	return nil
}

func (a *app) profile(ctx context.Context) error {
	user := a.session.Current()
	if user == nil {
		return fmt.Errorf("not logged in")
	}
	fresh, err := a.client.GetUser(ctx, user.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Name:  %s\nEmail: %s\nID:    %s\n", fresh.Name, fresh.Email, fresh.ID)
	return nil
}

func (a *app) updateProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update-profile", flag.ExitOnError)
	name := fs.String("name", "", "new name")
	email := fs.String("email", "", "new email")
	password := fs.String("password", "", "new password")
	fs.Parse(args)

	user := a.session.Current()
	if user == nil {
		return fmt.Errorf("not logged in")
	}

	var patch api.UserPatch
	if *name != "" {
		patch.Name = name
	}
	if *email != "" {
		patch.Email = email
	}
	if *password != "" {
		patch.Password = password
	}
	if patch.Name == nil && patch.Email == nil && patch.Password == nil {
		return fmt.Errorf("nothing to update")
	}

	updated, err := a.client.UpdateUser(ctx, user.ID, patch)
	if err != nil {
		return err
	}
	fmt.Printf("Profile updated: %s <%s>\n", updated.Name, updated.Email)
	return nil
}

// findBooking resolves an id within the current user's booking list so the
// lifecycle rules see the status and vehicle rate the server holds.
func (a *app) findBooking(ctx context.Context, id string) (*models.BookingDetail, error) {
	if id == "" {
		return nil, fmt.Errorf("booking id is required")
	}
	user := a.session.Current()
	if user == nil {
		return nil, fmt.Errorf("not logged in")
	}
	details, err := a.client.ListBookings(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for i := range details {
		if details[i].ID == id {
			return &details[i], nil
		}
	}
	return nil, fmt.Errorf("booking %s not found", id)
}
