package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/bookbazaar/bookbazaar/app"
	"github.com/bookbazaar/bookbazaar/client"
	"github.com/bookbazaar/bookbazaar/config"
	"github.com/bookbazaar/bookbazaar/localstore"
	"github.com/bookbazaar/bookbazaar/log"
	"github.com/bookbazaar/bookbazaar/server"
	"github.com/bookbazaar/bookbazaar/state"
	"github.com/bookbazaar/bookbazaar/store"
	"github.com/bookbazaar/bookbazaar/store/db"
	"github.com/bookbazaar/bookbazaar/worker"
	"github.com/spf13/cobra"
	"github.com/vincent-petithory/dataurl"
	"go.uber.org/zap"
)

const greetingBanner = `
██████╗  ██████╗  ██████╗ ██╗  ██╗██████╗  █████╗ ███████╗ █████╗  █████╗ ██████╗
██╔══██╗██╔═══██╗██╔═══██╗██║ ██╔╝██╔══██╗██╔══██╗╚══███╔╝██╔══██╗██╔══██╗██╔══██╗
██████╔╝██║   ██║██║   ██║█████╔╝ ██████╔╝███████║  ███╔╝ ███████║███████║██████╔╝
██╔══██╗██║   ██║██║   ██║██╔═██╗ ██╔══██╗██╔══██║ ███╔╝  ██╔══██║██╔══██║██╔══██╗
██████╔╝╚██████╔╝╚██████╔╝██║  ██╗██████╔╝██║  ██║███████╗██║  ██║██║  ██║██║  ██║
╚═════╝  ╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚═════╝ ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝
`

var configFile string

var rootCmd = &cobra.Command{
	Use:   "bookbazaar",
	Short: "BookBazaar is a small online bookstore",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configFile != "" {
			if _, err := config.ParseFile(configFile); err != nil {
				return err
			}
			if config.Opts.DSN == "" {
				config.Opts.DSN = filepath.Join(config.Opts.Data, "bookbazaar.db")
			}
			if config.Opts.LocalDSN == "" {
				config.Opts.LocalDSN = filepath.Join(config.Opts.Data, "local.db")
			}
		} else if config.Opts == nil {
			if _, err := config.GetConfig(); err != nil {
				return err
			}
		}
		log.Logger = log.NewLogger()
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the BookBazaar API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		database, err := db.NewDB(config.Opts.DSN)
		if err != nil {
			log.Error("Error connecting to database", zap.Error(err))
			return err
		}
		defer database.Close()
		if err := database.Migrate(ctx); err != nil {
			log.Error("Error migrating database", zap.Error(err))
			return err
		}

		s := store.NewStore(database.DB)
		if err := s.Ping(); err != nil {
			log.Error("Error pinging database", zap.Error(err))
			return err
		}

		coverPool := worker.NewCoverPool(s, config.Opts.WorkerPoolSize)
		if err := worker.ResumeCoverJobs(s, coverPool); err != nil {
			log.Error("Error resuming cover jobs", zap.Error(err))
			return err
		}

		httpServer, err := server.StartServer(ctx, s, coverPool)
		if err != nil {
			log.Error("Error starting server", zap.Error(err))
			return err
		}
		fmt.Print(greetingBanner)

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down server", zap.Error(err))
		}
		log.Info("Server stopped")
		return nil
	},
}

// newApp builds the client-side app backed by the local store.
func newApp() (*app.App, *localstore.Store, error) {
	local, err := localstore.Open(config.Opts.LocalDSN)
	if err != nil {
		return nil, nil, err
	}

	st := state.New(local)
	api := client.New(config.Opts.APIURL)
	a := app.New(api, st, os.Stdout)
	if err := a.Init(); err != nil {
		local.Close()
		return nil, nil, err
	}
	return a, local, nil
}

func runApp(fn func(ctx context.Context, a *app.App) error) error {
	a, local, err := newApp()
	if err != nil {
		return err
	}
	defer local.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return fn(ctx, a)
}

var registerCmd = &cobra.Command{
	Use:   "register <name> <email> <password> <confirm>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(ctx context.Context, a *app.App) error {
			return a.Register(ctx, args[0], args[1], args[2], args[3])
		})
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Log in",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(ctx context.Context, a *app.App) error {
			return a.Login(ctx, args[0], args[1])
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(ctx context.Context, a *app.App) error {
			return a.Logout()
		})
	},
}

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "List the published books",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(ctx context.Context, a *app.App) error {
			return a.ShowBooks(ctx)
		})
	},
}

var bookCmd = &cobra.Command{
	Use:   "book <id>",
	Short: "Show one book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(ctx context.Context, a *app.App) error {
			return a.ShowBookDetail(ctx, args[0])
		})
	},
}

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the shopping cart",
}

var cartAddCmd = &cobra.Command{
	Use:   "add <bookID>",
	Short: "Add a book to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(ctx context.Context, a *app.App) error {
			return a.AddToCart(args[0])
		})
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <index>",
	Short: "Remove a cart line by index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("index must be a number: %w", err)
		}
		return runApp(func(ctx context.Context, a *app.App) error {
			return a.RemoveFromCart(index)
		})
	},
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(ctx context.Context, a *app.App) error {
			return a.ShowCart()
		})
	},
}

var favoriteCmd = &cobra.Command{
	Use:   "favorite <bookID>",
	Short: "Toggle a favorite mark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(ctx context.Context, a *app.App) error {
			return a.ToggleFavorite(args[0])
		})
	},
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Show your favorite books",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(ctx context.Context, a *app.App) error {
			return a.ShowFavorites()
		})
	},
}

var (
	uploadTitle       string
	uploadAuthor      string
	uploadPublisher   string
	uploadPrice       int
	uploadDiscount    int
	uploadDescription string
	uploadCoverFile   string
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Submit a book for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := app.UploadParams{
			Title:              uploadTitle,
			Author:             uploadAuthor,
			Publisher:          uploadPublisher,
			Price:              uploadPrice,
			DiscountPercentage: uploadDiscount,
			Description:        uploadDescription,
		}
		if uploadCoverFile != "" {
			raw, err := os.ReadFile(uploadCoverFile)
			if err != nil {
				return fmt.Errorf("failed to read cover: %w", err)
			}
			params.CoverDataURL = dataurl.EncodeBytes(raw)
		}
		return runApp(func(ctx context.Context, a *app.App) error {
			return a.Upload(ctx, params)
		})
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Review uploaded books",
}

var adminPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List books waiting for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(ctx context.Context, a *app.App) error {
			return a.AdminPending(ctx)
		})
	},
}

var adminApproveCmd = &cobra.Command{
	Use:   "approve <bookID>",
	Short: "Approve a pending book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(ctx context.Context, a *app.App) error {
			return a.AdminApprove(ctx, args[0])
		})
	},
}

var adminRejectCmd = &cobra.Command{
	Use:   "reject <bookID>",
	Short: "Reject and delete a pending book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(ctx context.Context, a *app.App) error {
			return a.AdminReject(ctx, args[0])
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to the config file")

	uploadCmd.Flags().StringVar(&uploadTitle, "title", "", "book title")
	uploadCmd.Flags().StringVar(&uploadAuthor, "author", "", "book author")
	uploadCmd.Flags().StringVar(&uploadPublisher, "publisher", "", "publisher")
	uploadCmd.Flags().IntVar(&uploadPrice, "price", 0, "price")
	uploadCmd.Flags().IntVar(&uploadDiscount, "discount", 0, "discount percentage")
	uploadCmd.Flags().StringVar(&uploadDescription, "description", "", "description")
	uploadCmd.Flags().StringVar(&uploadCoverFile, "cover", "", "path to a cover image")
	uploadCmd.MarkFlagRequired("title")
	uploadCmd.MarkFlagRequired("author")
	uploadCmd.MarkFlagRequired("price")

	cartCmd.AddCommand(cartAddCmd, cartRemoveCmd, cartShowCmd)
	adminCmd.AddCommand(adminPendingCmd, adminApproveCmd, adminRejectCmd)
	rootCmd.AddCommand(serveCmd, registerCmd, loginCmd, logoutCmd, booksCmd, bookCmd,
		cartCmd, favoriteCmd, favoritesCmd, uploadCmd, adminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
